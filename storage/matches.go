package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Pato1236897/Golf/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MatchStorage interface {
	Create(ctx context.Context, match *Match) error
	Get(ctx context.Context, id string) (*Match, error)
	GetAll(ctx context.Context, limit int) ([]*Match, error)
	// UpdateStatus moves a match from one status to the next and stamps the transition time.
	UpdateStatus(ctx context.Context, id string, from, to MatchStatus, at time.Time) error
	SaveAwards(ctx context.Context, id string, awards *Awards) error
}

type DynamoMatchStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoMatchStorage) Create(ctx context.Context, match *Match) error {
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal match: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("MATCH: item with ID %s already exists", match.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("MATCH: failed to create match: %v", err)
		return err
	}
	return nil
}

func (s *DynamoMatchStorage) Get(ctx context.Context, id string) (*Match, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("MATCH: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("MATCH: no match found with ID %s", id)
		return nil, ErrMatchNotFound
	}

	var match Match
	if err := attributevalue.UnmarshalMap(out.Item, &match); err != nil {
		logging.Log.Errorf("MATCH: failed to unmarshal match: %v", err)
		return nil, err
	}
	return &match, nil
}

func (s *DynamoMatchStorage) GetAll(ctx context.Context, limit int) ([]*Match, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var matches []*Match
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &s.TableName,
			ExclusiveStartKey: lastEvaluatedKey,
			Limit:             aws.Int32(int32(limit - len(matches))),
		})
		if err != nil {
			logging.Log.Errorf("MATCH: scan failed: %v", err)
			return nil, err
		}

		var page []*Match
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("MATCH: failed to unmarshal match list: %v", err)
			return nil, err
		}
		matches = append(matches, page...)

		if out.LastEvaluatedKey == nil || len(matches) >= limit {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
	return matches, nil
}

func (s *DynamoMatchStorage) UpdateStatus(ctx context.Context, id string, from, to MatchStatus, at time.Time) error {
	stamp, err := attributevalue.Marshal(at.UTC())
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal transition time: %v", err)
		return err
	}

	stampAttribute := "StartedAt"
	if to == StatusCompleted {
		stampAttribute = "CompletedAt"
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :to, #stamp = :at"),
		ExpressionAttributeNames: map[string]string{
			"#status": "Status",
			"#stamp":  stampAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: string(from)},
			":to":   &types.AttributeValueMemberS{Value: string(to)},
			":at":   stamp,
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			if len(cce.Item) == 0 {
				return ErrMatchNotFound
			}
			logging.Log.Warnf("MATCH: status of %s is no longer %s", id, from)
			return ErrStatusConflict
		}
		logging.Log.Errorf("MATCH: failed to update status of %s: %v", id, err)
		return err
	}
	logging.Log.Infof("MATCH: %s moved from %s to %s", id, from, to)
	return nil
}

func (s *DynamoMatchStorage) SaveAwards(ctx context.Context, id string, awards *Awards) error {
	value, err := attributevalue.Marshal(awards)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal awards for %s: %v", id, err)
		return err
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		UpdateExpression:          aws.String("SET Awards = :awards"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":awards": value},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrMatchNotFound
		}
		logging.Log.Errorf("MATCH: failed to save awards for %s: %v", id, err)
		return err
	}
	return nil
}
