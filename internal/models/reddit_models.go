package models

import "time"

type RedditPost struct {
	Query       string    `json:"query"`
	Subreddit   string    `json:"subreddit"`
	Author      string    `json:"author"`
	PostTitle   string    `json:"post_title"`
	PostContent string    `json:"post_content"`
	Upvotes     int       `json:"upvotes"`
	CreatedAt   time.Time `json:"created_at"`
	PostID      string    `json:"id"`
	Permalink   string    `json:"permalink"`
}

func (p RedditPost) ToNewsRecord() NewsRecord {
	rec := NewsRecord{
		Title:   p.PostTitle,
		Summary: p.PostContent,
		Source:  "reddit:r/" + p.Subreddit,
	}
	if p.Permalink != "" {
		rec.URL = "https://www.reddit.com" + p.Permalink
	}
	if !p.CreatedAt.IsZero() {
		rec.Timestamp = TimestampFromTime(p.CreatedAt)
	}
	return rec
}

type RedditAPIResponse struct {
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Data RedditAPIChildData `json:"data"`
}

type RedditAPIChildData struct {
	Subreddit      string  `json:"subreddit"`
	AuthorFullname string  `json:"author_fullname"`
	Title          string  `json:"title"`
	Selftext       string  `json:"selftext"`
	Ups            int     `json:"ups"`
	CreatedUTC     float64 `json:"created_utc"`
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Permalink      string  `json:"permalink"`
}

func (d RedditAPIChildData) ToRedditPost(query string) RedditPost {
	return RedditPost{
		Query:       query,
		Subreddit:   d.Subreddit,
		Author:      d.AuthorFullname,
		PostTitle:   d.Title,
		PostContent: d.Selftext,
		Upvotes:     d.Ups,
		CreatedAt:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		PostID:      d.ID,
		Permalink:   d.Permalink,
	}
}
