package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Pato1236897/Golf/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableWaitTimeout = 2 * time.Minute

// EnsureDynamoTables creates the match and score tables when they are missing.
// Used for local DynamoDB/localstack setups; deployed tables are provisioned outside the service.
func EnsureDynamoTables(ctx context.Context, client *dynamodb.Client, matchesTable, scoresTable string) error {
	if err := ensureTable(ctx, client, matchesTable, []types.KeySchemaElement{
		{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
	}, []types.AttributeDefinition{
		{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
	}); err != nil {
		return err
	}

	return ensureTable(ctx, client, scoresTable, []types.KeySchemaElement{
		{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
		{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
	}, []types.AttributeDefinition{
		{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
		{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
	})
}

func ensureTable(ctx context.Context, client *dynamodb.Client, name string, keys []types.KeySchemaElement, attrs []types.AttributeDefinition) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		logging.Log.Errorf("TABLES: describe %s failed: %v", name, err)
		return err
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		KeySchema:            keys,
		AttributeDefinitions: attrs,
		BillingMode:          types.BillingModePayPerRequest,
	})
	if err != nil {
		logging.Log.Errorf("TABLES: create %s failed: %v", name, err)
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, tableWaitTimeout); err != nil {
		logging.Log.Errorf("TABLES: waiting for %s failed: %v", name, err)
		return err
	}
	logging.Log.Infof("TABLES: created %s", name)
	return nil
}
