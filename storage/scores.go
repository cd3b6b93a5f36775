package storage

import (
	"context"
	"fmt"

	"github.com/Pato1236897/Golf/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ScoreStorage is the append-only score ledger. Rows are never merged or overwritten.
type ScoreStorage interface {
	Append(ctx context.Context, score *Score) error
	ListByMatch(ctx context.Context, matchID string) ([]*Score, error)
}

type DynamoScoreStorage struct {
	Client    *dynamodb.Client
	TableName string
}

// ScoreSortKey orders a match's ledger by submission time, then score id.
func ScoreSortKey(score *Score) string {
	return fmt.Sprintf("%019d#%s", score.SubmittedAt.UnixNano(), score.ID)
}

func (s *DynamoScoreStorage) Append(ctx context.Context, score *Score) error {
	if score.SortKey == "" {
		score.SortKey = ScoreSortKey(score)
	}

	item, err := attributevalue.MarshalMap(score)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to marshal score: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		logging.Log.Errorf("SCORE: failed to append score for match %s: %v", score.MatchID, err)
		return err
	}
	return nil
}

func (s *DynamoScoreStorage) ListByMatch(ctx context.Context, matchID string) ([]*Score, error) {
	var scores []*Score
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		output, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :match"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":match": &types.AttributeValueMemberS{Value: matchID},
			},
			ExclusiveStartKey: lastEvaluatedKey,
			ScanIndexForward:  aws.Bool(true),
			ConsistentRead:    aws.Bool(true),
		})
		if err != nil {
			logging.Log.Errorf("SCORE: failed to query scores for match %s: %v", matchID, err)
			return nil, err
		}

		var page []*Score
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			logging.Log.Errorf("SCORE: failed to unmarshal scores for match %s: %v", matchID, err)
			return nil, err
		}
		scores = append(scores, page...)

		if output.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = output.LastEvaluatedKey
	}
	return scores, nil
}
