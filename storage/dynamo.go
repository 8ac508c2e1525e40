package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoTables struct {
	Members  string
	Agendas  string
	Sessions string
	Votes    string
	Keys     string
}

func NewDynamoBackend(client *dynamodb.Client, tables DynamoTables) *Backend {
	seq := &dynamoSequence{Client: client, TableName: tables.Keys}
	return &Backend{
		Members:  &DynamoMemberStorage{Client: client, TableName: tables.Members, KeysTableName: tables.Keys},
		Agendas:  &DynamoAgendaStorage{Client: client, TableName: tables.Agendas, seq: seq},
		Sessions: &DynamoSessionStorage{Client: client, TableName: tables.Sessions, KeysTableName: tables.Keys, seq: seq},
		Votes:    &DynamoVoteStorage{Client: client, TableName: tables.Votes, SessionsTableName: tables.Sessions, seq: seq},
	}
}

// CreateDynamoTables creates the tables used by the backend when they are missing.
// Meant for localstack and first deployments; production tables are usually provisioned outside.
func CreateDynamoTables(ctx context.Context, client *dynamodb.Client, tables DynamoTables) error {
	pkOnly := map[string]types.ScalarAttributeType{
		tables.Members:  types.ScalarAttributeTypeS,
		tables.Keys:     types.ScalarAttributeTypeS,
		tables.Agendas:  types.ScalarAttributeTypeN,
		tables.Sessions: types.ScalarAttributeTypeN,
	}
	for name, pkType := range pkOnly {
		if err := createTable(ctx, client, &dynamodb.CreateTableInput{
			TableName: aws.String(name),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("PK"), AttributeType: pkType},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		}); err != nil {
			return err
		}
	}

	return createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName: aws.String(tables.Votes),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeN},
			{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) error {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		logging.Log.Errorf("DYNAMO: failed to create table %s: %v", aws.ToString(input.TableName), err)
		return err
	}
	logging.Log.Infof("DYNAMO: created table %s", aws.ToString(input.TableName))
	return nil
}

// dynamoSequence hands out sequential IDs from atomic counters stored in the keys table.
type dynamoSequence struct {
	Client    *dynamodb.Client
	TableName string
}

func (q *dynamoSequence) next(ctx context.Context, name string) (int64, error) {
	out, err := q.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(q.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "seq#" + name},
		},
		UpdateExpression:          aws.String("ADD #v :one"),
		ExpressionAttributeNames:  map[string]string{"#v": "Value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		logging.Log.Errorf("DYNAMO: failed to advance sequence %s: %v", name, err)
		return 0, err
	}

	var item keyItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return 0, fmt.Errorf("unmarshal sequence %s: %w", name, err)
	}
	return item.Value, nil
}

func numberKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func scanAll[T any](ctx context.Context, client *dynamodb.Client, input *dynamodb.ScanInput) ([]*T, error) {
	paginator := dynamodb.NewScanPaginator(client, input)

	items := make([]*T, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []*T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func isConditionFailed(err error) bool {
	var cce *types.ConditionalCheckFailedException
	return errors.As(err, &cce)
}

// cancelledChecks returns the positions of the transaction items whose condition failed.
func cancelledChecks(err error) map[int]bool {
	failed := make(map[int]bool)
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for i, reason := range tce.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				failed[i] = true
			}
		}
	}
	return failed
}
