package storage

import (
	"context"
	"sort"
	"strconv"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoVoteStorage struct {
	Client            *dynamodb.Client
	TableName         string
	SessionsTableName string
	seq               *dynamoSequence
}

func (s *DynamoVoteStorage) Create(ctx context.Context, vote *Vote) error {
	id, err := s.seq.next(ctx, "vote")
	if err != nil {
		return err
	}
	vote.ID = id

	item, err := attributevalue.MarshalMap(vote)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote: %v", err)
		return err
	}
	// The session check and the put commit together, and conflict with MarkClosed on the session item.
	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{ConditionCheck: &types.ConditionCheck{
				TableName:           aws.String(s.SessionsTableName),
				Key:                 numberKey(vote.SessionID),
				ConditionExpression: aws.String("Closed = :open AND Deadline > :castAt"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":open":   &types.AttributeValueMemberBOOL{Value: false},
					":castAt": &types.AttributeValueMemberN{Value: strconv.FormatInt(vote.CastAt.UnixNano(), 10)},
				},
			}},
			{Put: &types.Put{
				TableName:           &s.TableName,
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
			}},
		},
	})
	if err != nil {
		failed := cancelledChecks(err)
		if failed[0] {
			logging.Log.Warnf("VOTE: session %d is not accepting the vote of member %s", vote.SessionID, vote.MemberID)
			return ErrSessionClosed
		}
		if failed[1] {
			logging.Log.Warnf("VOTE: member %s already voted in session %d", vote.MemberID, vote.SessionID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	return nil
}

func (s *DynamoVoteStorage) GetBySession(ctx context.Context, sessionID int64) ([]*Vote, error) {
	paginator := dynamodb.NewQueryPaginator(s.Client, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :session"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":session": &types.AttributeValueMemberN{Value: strconv.FormatInt(sessionID, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})

	votes := make([]*Vote, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logging.Log.Errorf("VOTE: failed to query votes for session %d: %v", sessionID, err)
			return nil, err
		}
		var batch []*Vote
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			logging.Log.Errorf("VOTE: failed to unmarshal votes for session %d: %v", sessionID, err)
			return nil, err
		}
		votes = append(votes, batch...)
	}

	// The sort key is the member id; insertion order is the sequence order.
	sort.Slice(votes, func(i, j int) bool { return votes[i].ID < votes[j].ID })
	return votes, nil
}

func (s *DynamoVoteStorage) Exists(ctx context.Context, sessionID int64, memberID string) (bool, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberN{Value: strconv.FormatInt(sessionID, 10)},
			"SK": &types.AttributeValueMemberS{Value: memberID},
		},
		ProjectionExpression: aws.String("PK"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("VOTE: GetItem for session %d member %s failed: %v", sessionID, memberID, err)
		return false, err
	}
	return out.Item != nil, nil
}
