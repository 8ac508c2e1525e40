package storage

import (
	"context"
	"sort"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoMemberStorage struct {
	Client        *dynamodb.Client
	TableName     string
	KeysTableName string
}

// Create writes the member together with a CPF guard row so two members can never share a CPF.
func (s *DynamoMemberStorage) Create(ctx context.Context, member *Member) error {
	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal member: %v", err)
		return err
	}
	guard, err := attributevalue.MarshalMap(keyItem{Key: "cpf#" + member.CPF, Ref: member.ID})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal cpf guard: %v", err)
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
			logging.Log.Warnf("MEMBER: member %s or its cpf already exists", member.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("MEMBER: failed to create member: %v", err)
		return err
	}
	return nil
}

func (s *DynamoMemberStorage) Get(ctx context.Context, id string) (*Member, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("MEMBER: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var member Member
	if err := attributevalue.UnmarshalMap(out.Item, &member); err != nil {
		logging.Log.Errorf("MEMBER: failed to unmarshal member: %v", err)
		return nil, err
	}
	return &member, nil
}

func (s *DynamoMemberStorage) GetAll(ctx context.Context) ([]*Member, error) {
	members, err := scanAll[Member](ctx, s.Client, &dynamodb.ScanInput{TableName: &s.TableName})
	if err != nil {
		logging.Log.Errorf("MEMBER: scan failed: %v", err)
		return nil, err
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

func (s *DynamoMemberStorage) SetActive(ctx context.Context, id string, active bool) (*Member, error) {
	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String("SET Active = :val"),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":val": &types.AttributeValueMemberBOOL{Value: active}},
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, ErrItemNotFound
		}
		logging.Log.Errorf("MEMBER: failed to set active=%t for %s: %v", active, id, err)
		return nil, err
	}

	var member Member
	if err := attributevalue.UnmarshalMap(out.Attributes, &member); err != nil {
		logging.Log.Errorf("MEMBER: failed to unmarshal updated member: %v", err)
		return nil, err
	}
	return &member, nil
}
