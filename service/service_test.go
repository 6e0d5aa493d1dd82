package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/memory"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fileHeader 通过真实的 multipart 编码得到 FileHeader
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

type fakeSink struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	seq     int
}

func newFakeSink() *fakeSink {
	return &fakeSink{saved: map[string][]byte{}}
}

func (s *fakeSink) Save(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%s/%d", prefix, s.seq)
	s.saved[key] = data
	return key, nil
}

func (s *fakeSink) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, key)
	s.removed = append(s.removed, key)
	return nil
}

// failingStore 的记录写入总是失败
type failingStore struct {
	*memory.Store
}

func (failingStore) CreateMaterial(ctx context.Context, in models.InsertMaterial) (*models.Material, error) {
	return nil, errors.New("disk full")
}

func materialInput() models.InsertMaterial {
	return models.InsertMaterial{Title: "Algebra notes", SubjectID: 2, BoardID: 1, UploadedBy: 1}
}

func TestInspect(t *testing.T) {
	svc := NewUploadService(memory.New(), newFakeSink(), 1024, quietLogger())

	_, err := svc.Inspect(nil)
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "No file uploaded", uploadErr.Reason)

	info, err := svc.Inspect(fileHeader(t, "notes.pdf", "application/pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", info.Name)
	assert.EqualValues(t, len(pdfBytes), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	_, err = svc.Inspect(fileHeader(t, "setup.exe", "application/x-msdownload", []byte("MZ")))
	assert.ErrorAs(t, err, &uploadErr)

	// 扩展名合法但声明的类型不在白名单
	_, err = svc.Inspect(fileHeader(t, "notes.pdf", "image/png", pdfBytes))
	assert.ErrorAs(t, err, &uploadErr)

	_, err = svc.Inspect(fileHeader(t, "big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 2048)))
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, uploadErr.Reason, "File too large")
}

func TestInspectSniffsOctetStream(t *testing.T) {
	svc := NewUploadService(memory.New(), newFakeSink(), 1024, quietLogger())

	info, err := svc.Inspect(fileHeader(t, "paper.pdf", "application/octet-stream", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)

	// 内容不是文档时拒绝
	_, err = svc.Inspect(fileHeader(t, "paper.pdf", "", []byte("just some text")))
	var uploadErr *UploadError
	assert.ErrorAs(t, err, &uploadErr)
}

func TestInspectWithoutExtension(t *testing.T) {
	svc := NewUploadService(memory.New(), newFakeSink(), 1024, quietLogger())

	info, err := svc.Inspect(fileHeader(t, "syllabus", "application/pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "syllabus", info.Name)
	assert.Equal(t, "application/pdf", info.ContentType)

	info, err = svc.Inspect(fileHeader(t, "syllabus", "application/octet-stream", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)

	_, err = svc.Inspect(fileHeader(t, "syllabus", "text/plain", []byte("plain text")))
	var uploadErr *UploadError
	assert.ErrorAs(t, err, &uploadErr)
}

func TestCreateMaterial(t *testing.T) {
	store := memory.New()
	sink := newFakeSink()
	svc := NewUploadService(store, sink, 1024, quietLogger())

	m, err := svc.CreateMaterial(context.Background(), fileHeader(t, "algebra.pdf", "application/pdf", pdfBytes), materialInput())
	require.NoError(t, err)
	assert.Equal(t, "algebra.pdf", m.FileName)
	assert.Equal(t, "application/pdf", m.FileType)
	assert.EqualValues(t, len(pdfBytes), m.FileSize)
	assert.EqualValues(t, 1, m.UploadedBy)
	assert.Len(t, sink.saved, 1)
}

func TestCreateMaterialRejectsBeforeWriting(t *testing.T) {
	store := memory.New()
	sink := newFakeSink()
	svc := NewUploadService(store, sink, 1024, quietLogger())
	ctx := context.Background()

	_, err := svc.CreateMaterial(ctx, fileHeader(t, "virus.exe", "application/octet-stream", []byte("MZ")), materialInput())
	var uploadErr *UploadError
	assert.ErrorAs(t, err, &uploadErr)

	in := materialInput()
	in.Title = ""
	_, err = svc.CreateMaterial(ctx, fileHeader(t, "a.pdf", "application/pdf", pdfBytes), in)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Materials)
	assert.Empty(t, sink.saved)
}

func TestCreateMaterialRemovesBlobWhenInsertFails(t *testing.T) {
	sink := newFakeSink()
	svc := NewUploadService(failingStore{memory.New()}, sink, 1024, quietLogger())

	_, err := svc.CreateMaterial(context.Background(), fileHeader(t, "a.pdf", "application/pdf", pdfBytes), materialInput())
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, sink.saved)
	assert.Len(t, sink.removed, 1)
}

func TestCreatePyqPaper(t *testing.T) {
	store := memory.New()
	svc := NewUploadService(store, newFakeSink(), 1024, quietLogger())
	ctx := context.Background()

	yes := true
	p, err := svc.CreatePyqPaper(ctx, fileHeader(t, "2019.pdf", "application/pdf", pdfBytes), models.InsertPyqPaper{
		Title: "Physics 2019", Year: 2019, SubjectID: 2, BoardID: 1, HasSolutions: &yes, UploadedBy: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2019.pdf", p.FileName)
	assert.True(t, p.HasSolutions)
	assert.False(t, p.HasAnswerKey)

	_, err = svc.CreatePyqPaper(ctx, fileHeader(t, "1800.pdf", "application/pdf", pdfBytes), models.InsertPyqPaper{
		Title: "Too old", Year: 1800, SubjectID: 2, BoardID: 1, UploadedBy: 1,
	})
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	papers, err := store.ListPyqPapers(ctx)
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestDashboardStats(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	svc := NewDashboardService(store)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{TotalStudents: 2847}, stats)

	_, err = store.CreateBoard(ctx, models.InsertBoard{Name: "CBSE", Type: models.BoardTypeSecondary})
	require.NoError(t, err)
	_, err = store.CreatePyqPaper(ctx, models.InsertPyqPaper{Title: "p", Year: 2020, FileName: "p.pdf", SubjectID: 1, BoardID: 1, UploadedBy: 1})
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2847, stats.TotalStudents)
	assert.EqualValues(t, 1, stats.TotalBoards)
	assert.EqualValues(t, 0, stats.TotalMaterials)
	assert.EqualValues(t, 1, stats.TotalPyqPapers)
}

func TestLogin(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	admin, err := repository.Seed(ctx, store, repository.SeedOptions{AdminUsername: "admin", AdminPassword: "admin123"})
	require.NoError(t, err)

	svc := NewAuthService(store)
	user, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
