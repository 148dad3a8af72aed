package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/org-setup/internal/entrymgr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Exporter interface {
	// write to csv
	WriteToCSV(filename string) error
	// export report to AWS S3 bucket
	ExportToS3(ctx context.Context, bucket string) (string, error)
	// add entry
	Add(entry shared.SetupEntry) error
	// get logger
	GetLogger() logger.Logger
}

type _Exporter struct {
	s3Client S3API             // client for S3
	entryMgr entrymgr.EntryMgr // manage setup report entries
	filename string            // filename for setup report
	logger   logger.Logger     // logger
}

// create new exporter
func Init(s3Client S3API, sos logger.Logger) (Exporter, error) {
	return &_Exporter{
		s3Client: s3Client,
		entryMgr: entrymgr.Init(),
		logger:   sos,
	}, nil
}

// add entry
func (e *_Exporter) Add(entry shared.SetupEntry) error {
	return e.entryMgr.Add(entry)
}

// write entries to csv
func (e *_Exporter) WriteToCSV(filename string) error {
	sos := e.GetLogger()
	e.filename = filename
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Writing header
	header := []string{Timestamp, AccountID, Region, Service, Action, Status, Message}
	if err := writer.Write(header); err != nil {
		return err
	}

	// write failed entries
	failedEntries, err := e.entryMgr.GetEntries(shared.StatusFailed)
	if err != nil {
		return err
	}
	for _, entry := range failedEntries {
		if err := writer.Write([]string{entry.Timestamp, entry.AccountID, entry.Region, entry.Service, entry.Action, string(entry.Status), entry.Message}); err != nil {
			return err
		}
	}
	sos.Infof("failed entries written to [%s]", filename)

	// write skipped entries
	skippedEntries, err := e.entryMgr.GetEntries(shared.StatusSkipped)
	if err != nil {
		return err
	}
	for _, entry := range skippedEntries {
		if err := writer.Write([]string{entry.Timestamp, entry.AccountID, entry.Region, entry.Service, entry.Action, string(entry.Status), entry.Message}); err != nil {
			return err
		}
	}
	sos.Infof("skipped entries written to [%s]", filename)

	// write succeeded entries
	succeededEntries, err := e.entryMgr.GetEntries(shared.StatusSucceeded)
	if err != nil {
		return err
	}
	for _, entry := range succeededEntries {
		if err := writer.Write([]string{entry.Timestamp, entry.AccountID, entry.Region, entry.Service, entry.Action, string(entry.Status), entry.Message}); err != nil {
			return err
		}
	}
	sos.Infof("succeeded entries written to [%s]", filename)

	return nil
}

// upload the csv report to S3, keyed by upload time
func (e *_Exporter) ExportToS3(ctx context.Context, bucket string) (string, error) {
	sos := e.GetLogger()
	file, err := os.Open(e.filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	timeNow := time.Now()
	key := timeNow.Format(time.RFC3339) + "/" + string(shared.SetupReportFileName)
	_, err = e.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})

	if err != nil {
		sos.Errorf("error uploading to S3: [%s]", err)
		return "", err
	}

	sos.Infof("report uploaded to [%s/%s]", bucket, key)
	return key, nil
}

// get logger
func (e *_Exporter) GetLogger() logger.Logger {
	return e.logger
}
