package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/apache/rocketmq-client-go/v2/primitive"

	"personal-color-agent-backend/config"
)

// RefreshMessage announces one refreshed trend document in object storage.
type RefreshMessage struct {
	ObjectName string `json:"object_name"`
}

// NewRefreshHandler builds the consumer handler for trend refresh messages:
// fetch the object, drop it into the trend directory, resync the in-memory
// cache. Resync failures only log; the file is already on disk and the next
// successful resync picks it up.
func NewRefreshHandler(trendDir string, resync func() error) MessageHandler {
	return func(ctx context.Context, msg *primitive.MessageExt) error {
		var refresh RefreshMessage
		if err := json.Unmarshal(msg.Body, &refresh); err != nil {
			return fmt.Errorf("failed to unmarshal message body: %v", err)
		}

		data, err := getObjectFromOSS(ctx, refresh.ObjectName)
		if err != nil {
			return fmt.Errorf("failed to get object from oss: %v", err)
		}

		target := filepath.Join(trendDir, filepath.Base(refresh.ObjectName))
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write trend document: %v", err)
		}

		slog.Info("Refreshed trend document", "object_name", refresh.ObjectName)

		if err := resync(); err != nil {
			slog.Warn("Trend cache resync failed after refresh", "err", err)
		}
		return nil
	}
}

func getObjectFromOSS(ctx context.Context, objectName string) ([]byte, error) {
	cfg := &oss.Config{
		Region: oss.Ptr(config.Cfg.OSS.Region),
		CredentialsProvider: credentials.NewStaticCredentialsProvider(
			config.Cfg.OSS.AccessKeyID,
			config.Cfg.OSS.AccessKeySecret,
		),
	}
	client := oss.NewClient(cfg)

	result, err := client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from oss: %v", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %v", err)
	}

	return data, nil
}
