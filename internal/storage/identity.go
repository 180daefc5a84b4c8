package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// VerifyAWS returns the AWS account ID the credentials resolve to, or an
// error when they are missing or rejected.
func VerifyAWS(ctx context.Context, awsCfg aws.Config) (string, error) {
	stsClient := sts.NewFromConfig(awsCfg)
	out, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Account), nil
}
