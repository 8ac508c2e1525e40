package storage

import (
	"context"
	"strconv"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoSessionStorage struct {
	Client        *dynamodb.Client
	TableName     string
	KeysTableName string
	seq           *dynamoSequence
}

// Create writes the session together with an open#<agenda> guard row in the keys table, so an agenda
// item has at most one unclosed session across every instance. The item also carries Deadline, the
// closing instant in unix nanoseconds, which vote writes compare against.
func (s *DynamoSessionStorage) Create(ctx context.Context, session *Session) error {
	id, err := s.seq.next(ctx, "session")
	if err != nil {
		return err
	}
	session.ID = id

	item, err := attributevalue.MarshalMap(session)
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal session: %v", err)
		return err
	}
	item["Deadline"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(session.ClosesAt.UnixNano(), 10)}
	guard, err := attributevalue.MarshalMap(keyItem{Key: openGuardKey(session.AgendaID), Ref: strconv.FormatInt(id, 10)})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal open guard: %v", err)
		return err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(s.KeysTableName),
				Item:                guard,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(s.TableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})
	if err != nil {
		if len(cancelledChecks(err)) > 0 {
			logging.Log.Warnf("SESSION: agenda item %d already has an unclosed session", session.AgendaID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("SESSION: failed to create session: %v", err)
		return err
	}
	return nil
}

func (s *DynamoSessionStorage) Get(ctx context.Context, id int64) (*Session, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            numberKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("SESSION: GetItem for ID %d failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var session Session
	if err := attributevalue.UnmarshalMap(out.Item, &session); err != nil {
		logging.Log.Errorf("SESSION: failed to unmarshal session: %v", err)
		return nil, err
	}
	return &session, nil
}

func (s *DynamoSessionStorage) GetAll(ctx context.Context) ([]*Session, error) {
	sessions, err := scanAll[Session](ctx, s.Client, &dynamodb.ScanInput{TableName: &s.TableName})
	if err != nil {
		logging.Log.Errorf("SESSION: scan failed: %v", err)
		return nil, err
	}
	return sessions, nil
}

func (s *DynamoSessionStorage) GetByAgenda(ctx context.Context, agendaID int64) ([]*Session, error) {
	sessions, err := scanAll[Session](ctx, s.Client, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("AgendaID = :agenda"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":agenda": &types.AttributeValueMemberN{Value: strconv.FormatInt(agendaID, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("SESSION: scan by agenda %d failed: %v", agendaID, err)
		return nil, err
	}
	return sessions, nil
}

func (s *DynamoSessionStorage) GetUnclosed(ctx context.Context) ([]*Session, error) {
	sessions, err := scanAll[Session](ctx, s.Client, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("Closed = :closed"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":closed": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		logging.Log.Errorf("SESSION: scan for unclosed sessions failed: %v", err)
		return nil, err
	}
	return sessions, nil
}

// MarkClosed sets Closed and releases the open guard of the agenda item in one transaction. The guard
// is only deleted while it still points at this session.
func (s *DynamoSessionStorage) MarkClosed(ctx context.Context, id int64) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session.Closed {
		return nil
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(s.TableName),
				Key:                       numberKey(id),
				UpdateExpression:          aws.String("SET Closed = :val"),
				ConditionExpression:       aws.String("attribute_exists(PK)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{":val": &types.AttributeValueMemberBOOL{Value: true}},
			}},
			{Delete: &types.Delete{
				TableName: aws.String(s.KeysTableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: openGuardKey(session.AgendaID)},
				},
				ConditionExpression:       aws.String("attribute_not_exists(PK) OR #ref = :ref"),
				ExpressionAttributeNames:  map[string]string{"#ref": "Ref"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":ref": &types.AttributeValueMemberS{Value: strconv.FormatInt(id, 10)}},
			}},
		},
	})
	if err != nil {
		failed := cancelledChecks(err)
		if failed[0] {
			return ErrItemNotFound
		}
		if failed[1] {
			// Sessions written before guard rows existed.
			_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
				TableName:                 aws.String(s.TableName),
				Key:                       numberKey(id),
				UpdateExpression:          aws.String("SET Closed = :val"),
				ConditionExpression:       aws.String("attribute_exists(PK)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{":val": &types.AttributeValueMemberBOOL{Value: true}},
			})
			if err == nil {
				return nil
			}
		}
		logging.Log.Errorf("SESSION: failed to mark session %d closed: %v", id, err)
		return err
	}
	return nil
}

func openGuardKey(agendaID int64) string {
	return "open#" + strconv.FormatInt(agendaID, 10)
}
