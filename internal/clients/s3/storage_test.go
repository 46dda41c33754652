package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[aws.ToString(in.Key)] = string(body)
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)

	return &s3.PutObjectOutput{}, nil
}

func TestStorage_SaveArtifacts(t *testing.T) {
	t.Parallel()

	objects := &fakeObjects{objects: map[string]string{}, types: map[string]string{}}
	st := &Storage{client: objects, bucket: "fiscal"}

	inv := entity.Invoice{ID: uuid.Must(uuid.NewV4()), TenantID: uuid.Must(uuid.NewV4())}

	keys, err := st.SaveArtifacts(context.Background(), inv, entity.CertificationResult{
		SignedDocument: []byte("<cfdi/>"),
		Rendering:      []byte("%PDF"),
	})
	require.NoError(t, err)
	require.Equal(t, Keys(inv.TenantID, inv.ID), keys)
	require.True(t, strings.HasSuffix(keys.SignedDocument, inv.ID.String()+".xml"))
	require.Equal(t, "<cfdi/>", objects.objects[keys.SignedDocument])
	require.Equal(t, contentTypePDF, objects.types[keys.Rendering])
}

func TestStorage_SaveArtifactsSkipsMissing(t *testing.T) {
	t.Parallel()

	objects := &fakeObjects{objects: map[string]string{}, types: map[string]string{}}
	st := &Storage{client: objects, bucket: "fiscal"}

	keys, err := st.SaveArtifacts(context.Background(), entity.Invoice{}, entity.CertificationResult{
		SignedDocument: []byte("<cfdi/>"),
	})
	require.NoError(t, err)
	require.Empty(t, keys.Rendering)
	require.Len(t, objects.objects, 1)
}

func TestStorage_SaveArtifactsError(t *testing.T) {
	t.Parallel()

	st := &Storage{client: &fakeObjects{err: errors.New("denied")}, bucket: "fiscal"}

	_, err := st.SaveArtifacts(context.Background(), entity.Invoice{}, entity.CertificationResult{
		SignedDocument: []byte("<cfdi/>"),
	})
	require.ErrorIs(t, err, entity.ErrStorage)
}

func TestStorage_ArtifactURL(t *testing.T) {
	t.Parallel()

	st, err := New(context.Background(), config.S3{
		Endpoint:     "http://localhost:9000",
		Region:       "us-east-1",
		Bucket:       "fiscal",
		AccessKey:    "access",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	u, err := st.ArtifactURL(context.Background(), "tenants/t/invoices/i.xml")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, "http://localhost:9000/fiscal/tenants/t/invoices/i.xml?"))
	require.Contains(t, u, "X-Amz-Signature=")

	_, err = st.ArtifactURL(context.Background(), "")
	require.ErrorIs(t, err, entity.ErrNotFound)
}
