package storage

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverDynamoDB = "dynamodb"
)

// Options selects and configures a backend.
type Options struct {
	Driver          string
	FilePath        string
	DatabaseURL     string
	SQLitePath      string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DynamoDBTable   string
}

// Open returns the repository named by opts.Driver.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (MoodRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	logger.Info("opening mood storage", zap.String("driver", driver))

	switch driver {
	case DriverMemory, "":
		return NewMemoryStorage(), nil
	case DriverFile:
		return NewFileStorage(opts.FilePath, logger)
	case DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("storage: %s driver requires DATABASE_URL", driver)
		}
		return NewPostgresStorage(ctx, opts.DatabaseURL, logger)
	case DriverSQLite:
		return NewSQLiteStorage(ctx, opts.SQLitePath, logger)
	case DriverMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("storage: %s driver requires MONGO_URI", driver)
		}
		return NewMongoStorage(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection, logger)
	case DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: load aws config: %w", err)
		}
		return NewDynamoStorage(dynamodb.NewFromConfig(awsCfg), opts.DynamoDBTable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
