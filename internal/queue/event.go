package queue

// ArticlePublishedEvent is published when an article transitions to the
// published state.  It carries enough context for downstream consumers
// (audit log, notifications, search indexing) without another database
// round trip.
type ArticlePublishedEvent struct {
	ArticleID       string   `json:"article_id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	DestinationCode string   `json:"destination_code,omitempty"`
	OriginCode      string   `json:"origin_code,omitempty"`
	VisaTypes       []string `json:"visa_types,omitempty"`
	IsGlobal        bool     `json:"is_global"`
	AccessTier      string   `json:"access_tier"`
	PublishedAt     string   `json:"published_at"`
}
