package minio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/DealLens/pkg/errors"
)

const testRunID = "0b7c3a4e-8f1d-4a55-9a8e-2f6f0c1d9e11"

type ArchiveTestSuite struct {
	suite.Suite
	api     *MockMinIOAPI
	client  *MinIOClient
	archive Archive
	at      time.Time
}

func (s *ArchiveTestSuite) SetupTest() {
	s.api = new(MockMinIOAPI)
	s.client = NewMinIOClientWithAPI(s.api, &MinIOConfig{Bucket: "runs", Prefix: "extractions"}, logging.NewNopLogger())
	s.archive = NewExtractionArchive(s.client, logging.NewNopLogger())
	s.at = time.Date(2026, 3, 4, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
}

func (s *ArchiveTestSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

func (s *ArchiveTestSuite) TestObjectKey_UsesUTCDay() {
	s.Equal("extractions/2026/03/05/"+testRunID+".json", ObjectKey("extractions", testRunID, s.at))
}

func (s *ArchiveTestSuite) TestPut() {
	data := []byte(`[{"page":1}]`)
	key := "extractions/2026/03/05/" + testRunID + ".json"

	s.api.On("PutObject", mock.Anything, "runs", key, mock.Anything, int64(len(data)),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/json" && o.UserMetadata["run-id"] == testRunID
		})).
		Return(minio.UploadInfo{Bucket: "runs", Key: key, ETag: "e1", Size: int64(len(data))}, nil)

	res, err := s.archive.Put(context.Background(), testRunID, s.at, data)
	s.Require().NoError(err)
	s.Equal(key, res.ObjectKey)
	s.Equal("runs", res.Bucket)
	s.Equal("e1", res.ETag)
	s.Equal(int64(len(data)), res.Size)
}

func (s *ArchiveTestSuite) TestPut_Invalid() {
	_, err := s.archive.Put(context.Background(), "", s.at, []byte("x"))
	s.ErrorIs(err, ErrInvalidRequest)

	_, err = s.archive.Put(context.Background(), testRunID, s.at, nil)
	s.ErrorIs(err, ErrInvalidRequest)
}

func (s *ArchiveTestSuite) TestPut_Failure() {
	s.api.On("PutObject", mock.Anything, "runs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := s.archive.Put(context.Background(), testRunID, s.at, []byte("[]"))
	s.True(apperrors.IsCode(err, apperrors.ErrCodeStorageError))
}

func (s *ArchiveTestSuite) TestPut_Closed() {
	s.Require().NoError(s.client.Close())
	_, err := s.archive.Put(context.Background(), testRunID, s.at, []byte("[]"))
	s.ErrorIs(err, ErrMinIOClientClosed)
}

func (s *ArchiveTestSuite) TestExists() {
	s.api.On("StatObject", mock.Anything, "runs", "k1", minio.StatObjectOptions{}).Return(minio.ObjectInfo{Key: "k1"}, nil)
	s.api.On("StatObject", mock.Anything, "runs", "k2", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})
	s.api.On("StatObject", mock.Anything, "runs", "k3", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{}, errors.New("timeout"))

	ok, err := s.archive.Exists(context.Background(), "k1")
	s.NoError(err)
	s.True(ok)

	ok, err = s.archive.Exists(context.Background(), "k2")
	s.NoError(err)
	s.False(ok)

	_, err = s.archive.Exists(context.Background(), "k3")
	s.Error(err)
}

func (s *ArchiveTestSuite) TestList() {
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "extractions/2026/03/05/a.json", Size: 10}
	ch <- minio.ObjectInfo{Key: "extractions/2026/03/05/b.json", Size: 20}
	close(ch)

	s.api.On("ListObjects", mock.Anything, "runs", minio.ListObjectsOptions{Prefix: "extractions/2026/03/05/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	objs, err := s.archive.List(context.Background(), s.at)
	s.Require().NoError(err)
	s.Len(objs, 2)
	s.Equal(int64(20), objs[1].Size)
}

func (s *ArchiveTestSuite) TestList_Error() {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("boom")}
	close(ch)
	s.api.On("ListObjects", mock.Anything, "runs", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := s.archive.List(context.Background(), s.at)
	s.True(apperrors.IsCode(err, apperrors.ErrCodeStorageError))
}

func (s *ArchiveTestSuite) TestDelete() {
	s.api.On("RemoveObject", mock.Anything, "runs", "k1", minio.RemoveObjectOptions{}).Return(nil)
	s.NoError(s.archive.Delete(context.Background(), "k1"))
}

func TestArchiveSuite(t *testing.T) {
	suite.Run(t, new(ArchiveTestSuite))
}

//Personal.AI order the ending
