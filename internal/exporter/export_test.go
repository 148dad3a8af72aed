package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/org-setup/internal/shared"
	"github.com/stretchr/testify/assert"
)

type mockS3Client struct {
	putCount int
	lastKey  string
	lastCtx  context.Context
	err      error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putCount++
	m.lastKey = *params.Key
	m.lastCtx = ctx
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestExporter(t *testing.T) {

	// ####################################
	// CREATE NEW EXPORTER
	// ####################################
	assertion := assert.New(t)
	mockClient := &mockS3Client{}
	exporter, err := Init(mockClient, logger.NewConsoleLogger(logger.LogLevelDebug))
	assertion.NoError(err, "should not be an error")
	assertion.NotNil(exporter, "should not be nil")
	exporterAssert := exporter.(*_Exporter)
	assertion.NotNil(exporterAssert.logger, "should not be nil")
	assertion.NotNil(exporterAssert.entryMgr, "should not be nil")
	assertion.NotNil(exporterAssert.s3Client, "should not be nil")

	// ####################################
	// ADD ENTRIES
	// ####################################

	assertion.NoError(exporter.Add(shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: "111111111111",
		Region:    "us-east-1",
		Service:   "SecurityHub",
		Action:    "EnableOrganizationAdminAccount",
		Status:    shared.StatusSucceeded,
	}))
	assertion.NoError(exporter.Add(shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: "222222222222",
		Region:    "eu-west-1",
		Service:   "Macie",
		Action:    "EnableMacie",
		Status:    shared.StatusFailed,
		Message:   "access denied",
	}))
	assertion.Error(exporter.Add(shared.SetupEntry{
		Status: shared.SetupStatus("UNKNOWN"),
	}))

	// ####################################
	// WRITE TO CSV
	// ####################################

	filename := filepath.Join(t.TempDir(), string(shared.SetupReportFileName))
	assertion.NoError(exporter.WriteToCSV(filename))

	file, err := os.Open(filename)
	assertion.NoError(err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	assertion.NoError(err)
	assertion.Len(records, 3) // header + 2 entries
	assertion.Equal([]string{Timestamp, AccountID, Region, Service, Action, Status, Message}, records[0])
	// failed entries are written first
	assertion.Equal("222222222222", records[1][1])
	assertion.Equal(string(shared.StatusFailed), records[1][5])
	assertion.Equal("111111111111", records[2][1])

	// ####################################
	// EXPORT TO S3
	// ####################################

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	key, err := exporter.ExportToS3(ctx, "test-bucket")
	assertion.NoError(err)
	assertion.Equal(1, mockClient.putCount)
	assertion.Equal(key, mockClient.lastKey)
	assertion.Contains(key, string(shared.SetupReportFileName))
	// upload runs under the invocation context
	assertion.Equal(ctx, mockClient.lastCtx)
}
