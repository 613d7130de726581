package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rise-summit/event-registration/registration"
	"github.com/rise-summit/event-registration/slices"
)

var _ registration.Repository = &DB{}

type registrationDynamo struct {
	PK     string
	SK     string
	GSI1PK string
	GSI1SK string

	ID             uuid.UUID
	FullName       string
	Email          string
	MobileNumber   string
	Address        string
	Enterprise     string
	SponsorName    string
	SponsorPhone   string
	AmountValue    int64
	AmountCurrency string
	PaymentStatus  registration.PaymentStatus
	TransactionID  *string
	CreatedAt      time.Time
}

const (
	registrationEntityName = "REGISTRATION"
)

func registrationPK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationSK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

// registrationGSI1SK sorts the createdAt-ordered index; the id suffix keeps
// keys unique for registrations created in the same nanosecond.
func registrationGSI1SK(createdAt time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", createdAt.UTC().Format(time.RFC3339Nano), id)
}

func registrationToDynamo(reg registration.Registration) registrationDynamo {
	return registrationDynamo{
		PK:             registrationPK(reg.ID),
		SK:             registrationSK(reg.ID),
		GSI1PK:         registrationEntityName,
		GSI1SK:         registrationGSI1SK(reg.CreatedAt, reg.ID),
		ID:             reg.ID,
		FullName:       reg.FullName,
		Email:          reg.Email,
		MobileNumber:   reg.MobileNumber,
		Address:        reg.Address,
		Enterprise:     reg.Enterprise,
		SponsorName:    reg.SponsorName,
		SponsorPhone:   reg.SponsorPhone,
		AmountValue:    reg.Amount.Amount(),
		AmountCurrency: reg.Amount.Currency().Code,
		PaymentStatus:  reg.PaymentStatus,
		TransactionID:  reg.TransactionID,
		CreatedAt:      reg.CreatedAt,
	}
}

func dynamoToRegistration(dynReg registrationDynamo) registration.Registration {
	return registration.Registration{
		ID:            dynReg.ID,
		FullName:      dynReg.FullName,
		Email:         dynReg.Email,
		MobileNumber:  dynReg.MobileNumber,
		Address:       dynReg.Address,
		Enterprise:    dynReg.Enterprise,
		SponsorName:   dynReg.SponsorName,
		SponsorPhone:  dynReg.SponsorPhone,
		Amount:        money.New(dynReg.AmountValue, dynReg.AmountCurrency),
		PaymentStatus: dynReg.PaymentStatus,
		TransactionID: dynReg.TransactionID,
		CreatedAt:     dynReg.CreatedAt,
	}
}

func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	dynamoReg := registrationToDynamo(reg)

	item, err := attributevalue.MarshalMap(dynamoReg)
	if err != nil {
		return registration.NewFailedToTranslateToDBModelError("Failed to translate registration to dynamo model", err)
	}
	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(newEntityConditional()))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		}
		return registration.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetRegistration(ctx context.Context, id uuid.UUID) (registration.Registration, error) {
	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registrationPK(id)},
			"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
		},
	})
	if err != nil {
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with ID %q", id), err)
	}

	if len(resp.Item) == 0 {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q not found", id), nil)
	}

	var dynReg registrationDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynReg)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal registration from dynamo: %s", err))
	}

	return dynamoToRegistration(dynReg), nil
}

func (d *DB) UpdateTransactionID(ctx context.Context, id uuid.UUID, transactionID string) error {
	return d.updateRegistrationField(ctx, id, "TransactionID", transactionID)
}

func (d *DB) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status registration.PaymentStatus) error {
	return d.updateRegistrationField(ctx, id, "PaymentStatus", string(status))
}

func (d *DB) updateRegistrationField(ctx context.Context, id uuid.UUID, name string, value string) error {
	expr := exprMustBuild(expression.NewBuilder().
		WithUpdate(expression.Set(expression.Name(name), expression.Value(value))).
		WithCondition(existingEntityConditional()))

	_, err := d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registrationPK(id)},
			"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q not found", id), err)
		}
		return registration.NewFailedToWriteError(fmt.Sprintf("Failed UpdateItem call for registration %q", id), err)
	}

	return nil
}

func (d *DB) ListRegistrations(ctx context.Context) ([]registration.Registration, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(registrationEntityName))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build dynamo key expression: %s", err))
	}

	var dynamoItems []registrationDynamo
	var startKey map[string]types.AttributeValue

	for {
		result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(d.tableName),
			IndexName:                 aws.String(gsi1),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			// Newest first
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, registration.NewFailedToFetchError("Failed to fetch registrations from dynamo", err)
		}

		var pageItems []registrationDynamo
		err = attributevalue.UnmarshalListOfMaps(result.Items, &pageItems)
		if err != nil {
			panic(fmt.Sprintf("failed to unmarshal dynamo registrations: %s", err))
		}
		dynamoItems = append(dynamoItems, pageItems...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return slices.Map(dynamoItems, func(v registrationDynamo) registration.Registration {
		return dynamoToRegistration(v)
	}), nil
}
