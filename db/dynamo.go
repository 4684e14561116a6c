package db

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/model"
)

const (
	kindSong    = "song"
	kindSetlist = "setlist"
)

type DynamoConfig struct {
	// Endpoint is empty for real AWS, or e.g. http://localhost:8000 for
	// DynamoDB Local.
	Endpoint string
	Region   string
	Table    string
}

// dynamoItem is the single-table layout: PK is "<kind>#<id>" and Doc
// holds the JSON-shaped record.
type dynamoItem struct {
	PK    string `dynamodbav:"PK"`
	Kind  string `dynamodbav:"Kind"`
	Title string `dynamodbav:"Title"`
	Doc   string `dynamodbav:"Doc"`
}

type DynamoStore struct {
	client *dynamodb.DynamoDB
	table  string
}

func OpenDynamo(ctx context.Context, cfg DynamoConfig) (*DynamoStore, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		if os.Getenv("AWS_ACCESS_KEY_ID") == "" {
			awsCfg.Credentials = credentials.NewStaticCredentials("local", "local", "")
		}
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, apperrors.Wrap(err, "create DynamoDB session")
	}

	store := &DynamoStore{client: dynamodb.New(sess), table: cfg.Table}
	if err := store.EnsureTable(ctx); err != nil {
		return nil, err
	}
	logging.Debug("opened song store", "backend", "dynamodb", "table", cfg.Table, "endpoint", cfg.Endpoint)
	return store, nil
}

// EnsureTable creates the table with on-demand billing if it is missing.
func (s *DynamoStore) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err == nil {
		return nil
	}
	var aerr awserr.Error
	if !apperrors.As(err, &aerr) || aerr.Code() != dynamodb.ErrCodeResourceNotFoundException {
		return apperrors.Wrapf(err, "describe table %s", s.table)
	}

	_, err = s.client.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{{
			AttributeName: aws.String("PK"),
			AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
		}},
		KeySchema: []*dynamodb.KeySchemaElement{{
			AttributeName: aws.String("PK"),
			KeyType:       aws.String(dynamodb.KeyTypeHash),
		}},
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
	})
	if err != nil {
		return apperrors.Wrapf(err, "create table %s", s.table)
	}
	logging.Info("created DynamoDB table", "table", s.table)
	return s.client.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
}

func pk(kind, id string) string {
	return kind + "#" + id
}

func (s *DynamoStore) scan(ctx context.Context, kind string) ([]dynamoItem, error) {
	var items []dynamoItem
	var scanErr error
	err := s.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(s.table),
		FilterExpression:         aws.String("#k = :k"),
		ExpressionAttributeNames: map[string]*string{"#k": aws.String("Kind")},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":k": {S: aws.String(kind)},
		},
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var batch []dynamoItem
		if scanErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &batch); scanErr != nil {
			return false
		}
		items = append(items, batch...)
		return true
	})
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "scan %s items", kind)
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Title), strings.ToLower(items[j].Title)
		if a != b {
			return a < b
		}
		return items[i].PK < items[j].PK
	})
	return items, nil
}

func (s *DynamoStore) put(ctx context.Context, item dynamoItem) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return apperrors.Wrap(err, "marshal item")
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	return apperrors.Wrapf(err, "put %s", item.PK)
}

func (s *DynamoStore) ListSongs(ctx context.Context) ([]model.Song, error) {
	items, err := s.scan(ctx, kindSong)
	if err != nil {
		return nil, err
	}
	res := make([]model.Song, 0, len(items))
	for _, item := range items {
		var song model.Song
		if err := decodeDoc(item.Doc, &song); err != nil {
			return nil, err
		}
		res = append(res, song)
	}
	return res, nil
}

func (s *DynamoStore) GetSong(ctx context.Context, id string) (model.Song, error) {
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(pk(kindSong, id))},
		},
	})
	if err != nil {
		return model.Song{}, apperrors.Wrapf(err, "get song %s", id)
	}
	if len(out.Item) == 0 {
		return model.Song{}, apperrors.NewNotFound("song", id)
	}

	var item dynamoItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return model.Song{}, apperrors.Wrapf(err, "unmarshal song %s", id)
	}
	var song model.Song
	err = decodeDoc(item.Doc, &song)
	return song, err
}

func (s *DynamoStore) SaveSong(ctx context.Context, song model.Song) (model.Song, error) {
	song, err := prepareSong(song)
	if err != nil {
		return song, err
	}
	doc, err := encodeDoc(song)
	if err != nil {
		return song, err
	}
	err = s.put(ctx, dynamoItem{PK: pk(kindSong, song.ID), Kind: kindSong, Title: song.Title, Doc: doc})
	return song, err
}

func (s *DynamoStore) DeleteSong(ctx context.Context, id string) error {
	out, err := s.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(pk(kindSong, id))},
		},
		ReturnValues: aws.String(dynamodb.ReturnValueAllOld),
	})
	if err != nil {
		return apperrors.Wrapf(err, "delete song %s", id)
	}
	if len(out.Attributes) == 0 {
		return apperrors.NewNotFound("song", id)
	}
	return nil
}

func (s *DynamoStore) ListSetlists(ctx context.Context) ([]model.Setlist, error) {
	items, err := s.scan(ctx, kindSetlist)
	if err != nil {
		return nil, err
	}
	res := make([]model.Setlist, 0, len(items))
	for _, item := range items {
		var setlist model.Setlist
		if err := decodeDoc(item.Doc, &setlist); err != nil {
			return nil, err
		}
		res = append(res, setlist)
	}
	return res, nil
}

func (s *DynamoStore) SaveSetlist(ctx context.Context, setlist model.Setlist) (model.Setlist, error) {
	setlist, err := prepareSetlist(setlist)
	if err != nil {
		return setlist, err
	}
	doc, err := encodeDoc(setlist)
	if err != nil {
		return setlist, err
	}
	err = s.put(ctx, dynamoItem{PK: pk(kindSetlist, setlist.ID), Kind: kindSetlist, Title: setlist.Name, Doc: doc})
	return setlist, err
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *DynamoStore) Close() error {
	return nil
}
