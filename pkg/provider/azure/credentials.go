package azure

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Environment variables carrying service principal credentials. They match
// what the azurerm Terraform provider reads, so one set of variables drives
// both the SDK clients and the provisioning run.
const (
	envClientID       = "ARM_CLIENT_ID"
	envClientSecret   = "ARM_CLIENT_SECRET"
	envTenantID       = "ARM_TENANT_ID"
	envSubscriptionID = "ARM_SUBSCRIPTION_ID"
)

// Credentials holds the service principal identity read from the environment.
// The values are passed through opaquely; no credential leaves the process
// except via the SDK and the provisioning subprocess environment.
type Credentials struct {
	ClientID       string
	ClientSecret   string
	TenantID       string
	SubscriptionID string
}

// credentialsFromEnv reads the ARM_* variables. All four are required; a
// missing one is reported by name so the fix is obvious.
func credentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		ClientID:       os.Getenv(envClientID),
		ClientSecret:   os.Getenv(envClientSecret),
		TenantID:       os.Getenv(envTenantID),
		SubscriptionID: os.Getenv(envSubscriptionID),
	}
	for _, v := range []struct {
		name  string
		value string
	}{
		{envClientID, creds.ClientID},
		{envClientSecret, creds.ClientSecret},
		{envTenantID, creds.TenantID},
		{envSubscriptionID, creds.SubscriptionID},
	} {
		if v.value == "" {
			return Credentials{}, fmt.Errorf("environment variable %s is required", v.name)
		}
	}
	return creds, nil
}

func (c Credentials) tokenCredential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewClientSecretCredential(c.TenantID, c.ClientID, c.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return cred, nil
}

// SubscriptionsAPI defines the interface for subscription operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type SubscriptionsAPI interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
}

// Compile-time verification that the Azure SDK client implements our interface
var _ SubscriptionsAPI = (*armsubscriptions.Client)(nil)

// validateCredentialsWithClient verifies the credentials against the
// subscription using a provided client (for testability).
func validateCredentialsWithClient(ctx context.Context, client SubscriptionsAPI, creds Credentials) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.validateCredentialsWithClient")
	defer span.End()

	span.SetAttributes(attribute.String("azure.subscription_id", creds.SubscriptionID))

	resp, err := client.Get(ctx, creds.SubscriptionID, nil)
	if err != nil {
		span.RecordError(err)
		if isNotFound(err) {
			return &ResourceNotFoundError{Kind: "subscription", Name: creds.SubscriptionID}
		}
		return fmt.Errorf("failed to verify subscription access: %w", err)
	}

	if resp.DisplayName != nil {
		span.SetAttributes(attribute.String("azure.subscription_name", *resp.DisplayName))
	}
	return nil
}

func validateCredentials(ctx context.Context, creds Credentials) error {
	cred, err := creds.tokenCredential()
	if err != nil {
		return err
	}
	client, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return validateCredentialsWithClient(ctx, client, creds)
}
