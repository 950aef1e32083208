package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/moodmate/companion/internal/model/mood"
)

const (
	moodPartition = "MOOD"
	// fixed-width so that sort keys order lexicographically by time
	sortKeyTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// dynamodbAPI is the minimal DynamoDB interface required by DynamoStorage.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStorage keeps all entries under one partition key, sorted by timestamp.
type DynamoStorage struct {
	api       dynamodbAPI
	tableName string
}

// NewDynamoStorage wraps a DynamoDB client for the given table.
func NewDynamoStorage(api dynamodbAPI, tableName string) (*DynamoStorage, error) {
	if api == nil {
		return nil, errors.New("storage: dynamodb api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("storage: dynamodb table name must not be empty")
	}
	return &DynamoStorage{api: api, tableName: tableName}, nil
}

func moodSK(ts time.Time, id string) string {
	return ts.UTC().Format(sortKeyTimeLayout) + "#" + id
}

func (d *DynamoStorage) Insert(ctx context.Context, entry *mood.Entry) error {
	if entry.ID == "" {
		id, err := newEntryID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	item := map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: moodPartition},
		"SK":        &types.AttributeValueMemberS{Value: moodSK(entry.Timestamp, entry.ID)},
		"id":        &types.AttributeValueMemberS{Value: entry.ID},
		"mood":      &types.AttributeValueMemberS{Value: entry.Mood},
		"timestamp": &types.AttributeValueMemberS{Value: entry.Timestamp.UTC().Format(time.RFC3339Nano)},
	}
	if entry.Journal != "" {
		item["journal"] = &types.AttributeValueMemberS{Value: entry.Journal}
	}

	_, err := d.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("storage: dynamodb put mood entry: %w", err)
	}
	return nil
}

func (d *DynamoStorage) List(ctx context.Context) ([]mood.Entry, error) {
	entries := make([]mood.Entry, 0)
	var startKey map[string]types.AttributeValue

	for {
		out, err := d.api.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(d.tableName),
			KeyConditionExpression: aws.String("PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: moodPartition},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("storage: dynamodb query mood entries: %w", err)
		}

		for _, item := range out.Items {
			e, err := itemToEntry(item)
			if err != nil {
				return nil, fmt.Errorf("storage: dynamodb unmarshal: %w", err)
			}
			entries = append(entries, e)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return entries, nil
}

func itemToEntry(item map[string]types.AttributeValue) (mood.Entry, error) {
	var e mood.Entry
	e.ID = stringAttr(item, "id")
	if e.ID == "" {
		return mood.Entry{}, errors.New("missing id attribute")
	}
	e.Mood = stringAttr(item, "mood")
	e.Journal = stringAttr(item, "journal")

	ts, err := time.Parse(time.RFC3339Nano, stringAttr(item, "timestamp"))
	if err != nil {
		return mood.Entry{}, fmt.Errorf("timestamp: %w", err)
	}
	e.Timestamp = ts.UTC()
	return e, nil
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (d *DynamoStorage) Close() error { return nil }

var _ MoodRepository = (*DynamoStorage)(nil)
