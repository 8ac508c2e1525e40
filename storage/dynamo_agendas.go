package storage

import (
	"context"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type DynamoAgendaStorage struct {
	Client    *dynamodb.Client
	TableName string
	seq       *dynamoSequence
}

func (s *DynamoAgendaStorage) Create(ctx context.Context, item *AgendaItem) error {
	id, err := s.seq.next(ctx, "agenda")
	if err != nil {
		return err
	}
	item.ID = id

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		logging.Log.Errorf("AGENDA: failed to marshal agenda item: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			logging.Log.Warnf("AGENDA: item with ID %d already exists", item.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("AGENDA: failed to create agenda item: %v", err)
		return err
	}
	return nil
}

func (s *DynamoAgendaStorage) Get(ctx context.Context, id int64) (*AgendaItem, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       numberKey(id),
	})
	if err != nil {
		logging.Log.Errorf("AGENDA: GetItem for ID %d failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var item AgendaItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		logging.Log.Errorf("AGENDA: failed to unmarshal agenda item: %v", err)
		return nil, err
	}
	return &item, nil
}

func (s *DynamoAgendaStorage) GetAll(ctx context.Context) ([]*AgendaItem, error) {
	items, err := scanAll[AgendaItem](ctx, s.Client, &dynamodb.ScanInput{TableName: &s.TableName})
	if err != nil {
		logging.Log.Errorf("AGENDA: scan failed: %v", err)
		return nil, err
	}
	return items, nil
}
