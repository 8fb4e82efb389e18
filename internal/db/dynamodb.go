package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/trendscope/internal/models"
)

const (
	REPORTS_TABLE_NAME = "TrendReports"
	MAX_BATCH_WRITE    = 25
	REPORT_TTL         = 7 * 24 * time.Hour
)

// DynamoAPI is the slice of the DynamoDB client the report store uses.
type DynamoAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	dynamodb.ScanAPIClient
}

// reportItem is the table row for one report. The full report rides along
// as JSON so reads do not depend on the attribute layout.
type reportItem struct {
	ID               string  `dynamodbav:"id"`
	Keyword          string  `dynamodbav:"keyword"`
	CreatedAt        int64   `dynamodbav:"created_at"`
	ArticleCount     int     `dynamodbav:"article_count"`
	OverallSentiment string  `dynamodbav:"overall_sentiment"`
	Trend            string  `dynamodbav:"trend"`
	TrendConfidence  float64 `dynamodbav:"trend_confidence"`
	Payload          string  `dynamodbav:"payload"`
	TTL              int64   `dynamodbav:"ttl"`
}

type DynamoReportStore struct {
	client  DynamoAPI
	table   string
	clock   clockwork.Clock
	backoff time.Duration
}

func NewDynamoReportStore(client DynamoAPI, table string, clock clockwork.Clock) *DynamoReportStore {
	if table == "" {
		table = REPORTS_TABLE_NAME
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DynamoReportStore{
		client:  client,
		table:   table,
		clock:   clock,
		backoff: 500 * time.Millisecond,
	}
}

func (s *DynamoReportStore) toItem(report models.Report) (map[string]types.AttributeValue, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] encode report %s: %w", report.ID, err)
	}
	return attributevalue.MarshalMap(reportItem{
		ID:               report.ID,
		Keyword:          report.Keyword,
		CreatedAt:        report.CreatedAt.Unix(),
		ArticleCount:     report.ArticleCount,
		OverallSentiment: string(report.Sentiment.OverallSentiment),
		Trend:            string(report.Trend.Trend),
		TrendConfidence:  report.Trend.Confidence,
		Payload:          string(payload),
		TTL:              s.clock.Now().Add(REPORT_TTL).Unix(),
	})
}

// Ping reads at most one item to confirm the table is reachable.
func (s *DynamoReportStore) Ping(ctx context.Context) error {
	_, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] ping %s: %w", s.table, err)
	}
	return nil
}

// SaveReports writes reports in chunks of 25 and retries whatever DynamoDB
// hands back as unprocessed.
func (s *DynamoReportStore) SaveReports(ctx context.Context, reports []models.Report) error {
	for i := 0; i < len(reports); i += MAX_BATCH_WRITE {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := min(i+MAX_BATCH_WRITE, len(reports))

		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, report := range reports[i:end] {
			item, err := s.toItem(report)
			if err != nil {
				return err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: writeRequests},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write reports: %w", err)
		}

		retryCount := 0
		backoff := s.backoff
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			s.clock.Sleep(backoff)
			backoff *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed reports...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[s.table])))

			out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if remaining := len(out.UnprocessedItems[s.table]); remaining > 0 {
			return fmt.Errorf("[DynamoDB] %d reports not written after retries", remaining)
		}
	}

	slog.Info("[DynamoDB] Stored reports", slog.Int("count", len(reports)))
	return nil
}

// ListReports scans the table, newest first. An empty keyword matches all
// reports and a non-positive limit returns everything.
func (s *DynamoReportStore) ListReports(ctx context.Context, keyword string, limit int) ([]models.Report, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
	if keyword != "" {
		input.FilterExpression = aws.String("keyword = :kw")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":kw": &types.AttributeValueMemberS{Value: keyword},
		}
	}

	var items []reportItem
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for reports failed: %w", err)
		}
		var page []reportItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal report page", slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, page...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	reports := make([]models.Report, 0, len(items))
	for _, item := range items {
		var report models.Report
		if err := json.Unmarshal([]byte(item.Payload), &report); err != nil {
			return nil, fmt.Errorf("[DynamoDB] decode report %s: %w", item.ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
