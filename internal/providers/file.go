package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spacesedan/trendscope/internal/models"
)

// FileProvider serves records from a JSON file, re-read on every fetch.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Fetch(_ context.Context, q Query) ([]models.NewsRecord, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("[FileProvider] failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	records, err := DecodeRecords(file)
	if err != nil {
		return nil, err
	}

	out := records[:0]
	for _, rec := range records {
		if matchesKeyword(q.Keyword, rec.Title, rec.Summary) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// DecodeRecords reads either a JSON array of records or an object with a
// "data" array, the shape the news endpoint returns.
func DecodeRecords(r io.Reader) ([]models.NewsRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("[DecodeRecords] failed to read input: %w", err)
	}

	var records []models.NewsRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data []models.NewsRecord `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("[DecodeRecords] input is neither a record array nor a data envelope: %w", err)
	}
	return envelope.Data, nil
}
