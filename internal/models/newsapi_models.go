package models

import "time"

type NewsAPIEverythingResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

type NewsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (a NewsAPIArticle) ToNewsRecord() NewsRecord {
	rec := NewsRecord{
		Title:   a.Title,
		Summary: a.Description,
		Source:  "newsapi:" + a.Source.Name,
		URL:     a.URL,
	}
	if !a.PublishedAt.IsZero() {
		rec.Timestamp = TimestampFromTime(a.PublishedAt)
	}
	return rec
}
