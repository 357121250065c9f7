package ruleset

import (
	"context"
	"errors"
	"testing"

	"ruleset-combiner/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == prefix })
}

func TestCheckLayout(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "rulesets").Return(true, nil)
	client.On("ListObjects", mock.Anything, "rulesets", listPrefix("Combined/jsons/")).
		Return(mocks.Objects("Combined/jsons/Units.json"))
	client.On("ListObjects", mock.Anything, "rulesets", listPrefix("Combined/Images/")).
		Return(mocks.Objects())

	missing, err := CheckLayout(context.Background(), client, "rulesets", "Combined")
	require.NoError(t, err)
	assert.Equal(t, []string{"Images"}, missing)
}

func TestCheckLayout_Bucket(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rulesets").Return(false, nil)
		_, err := CheckLayout(context.Background(), client, "rulesets", "")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rulesets").Return(false, errors.New("timeout"))
		_, err := CheckLayout(context.Background(), client, "rulesets", "")
		assert.ErrorContains(t, err, "timeout")
	})
}

func TestFixLayout(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "rulesets", "Combined/Images/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, FixLayout(context.Background(), client, "rulesets", "Combined", zap.NewNop(), []string{"Images"}))
	client.AssertExpectations(t)
}

func TestFixLayout_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "rulesets", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	err := FixLayout(context.Background(), client, "rulesets", "", zap.NewNop(), []string{"jsons", "Images"})
	assert.Error(t, err)
	client.AssertNumberOfCalls(t, "PutObject", 1)
}
