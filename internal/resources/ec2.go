package resources

import (
	"context"
	"log"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2API is the subset of the EC2 client used here.
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// EC2 wraps the AWS EC2 API.
type EC2 struct {
	client EC2API
	region string
}

func NewEC2(client EC2API, region string) *EC2 {
	return &EC2{
		client: client,
		region: region,
	}
}

// AllRegions returns all regions that don't require opt-in, sorted.
func (e *EC2) AllRegions(ctx context.Context) ([]string, error) {
	output, err := e.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		Filters: []ec2Types.Filter{
			{
				Name:   aws.String("opt-in-status"),
				Values: []string{"opt-in-not-required"},
			},
		},
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		log.Printf("[%s] unable to describe regions : [%v]", e.region, err)
		return nil, err
	}

	regions := make([]string, 0, len(output.Regions))
	for _, region := range output.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	sort.Strings(regions)
	return regions, nil
}
