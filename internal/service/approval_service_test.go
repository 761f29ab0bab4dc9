package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
)

type mockApprovalRepo struct {
	approvals []models.SubjectApproval
	requests  map[string]models.CertificationRequest
	upserted  []*models.SubjectApproval
	deleted   []string
}

func (m *mockApprovalRepo) ListApprovedForSubject(ctx context.Context, tutorID string, subject models.SubjectDescriptor) ([]models.SubjectApproval, error) {
	var out []models.SubjectApproval
	for _, a := range m.approvals {
		if a.TutorID == tutorID && a.Status == models.ApprovalApproved && a.Type == subject.Type && a.Grade == subject.Grade {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApprovalRepo) ListByTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error) {
	return m.approvals, nil
}

func (m *mockApprovalRepo) Upsert(ctx context.Context, approval *models.SubjectApproval) error {
	if approval.ID == "" {
		approval.ID = "approval-1"
	}
	m.upserted = append(m.upserted, approval)
	m.approvals = append(m.approvals, *approval)
	return nil
}

func (m *mockApprovalRepo) CreateCertificationRequest(ctx context.Context, req *models.CertificationRequest) error {
	if m.requests == nil {
		m.requests = make(map[string]models.CertificationRequest)
	}
	if req.ID == "" {
		req.ID = "req-1"
	}
	m.requests[req.ID] = *req
	return nil
}

func (m *mockApprovalRepo) FindCertificationRequestByID(ctx context.Context, id string) (*models.CertificationRequest, error) {
	if r, ok := m.requests[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockApprovalRepo) ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error) {
	out := make([]models.CertificationRequest, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockApprovalRepo) DeleteCertificationRequest(ctx context.Context, id string) error {
	delete(m.requests, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockTutorReader struct {
	tutors map[string]models.Tutor
}

func (m *mockTutorReader) FindTutorByID(ctx context.Context, id string) (*models.Tutor, error) {
	if t, ok := m.tutors[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

type mockCertNotifier struct {
	decisions []bool
}

func (m *mockCertNotifier) CertificationDecision(tutor *models.Tutor, subject models.SubjectDescriptor, approved bool) error {
	m.decisions = append(m.decisions, approved)
	return nil
}

func approvalFor(name, subjType, grade string) models.SubjectApproval {
	return models.SubjectApproval{
		ID:                "a-" + name,
		TutorID:           "tutor-1",
		SubjectDescriptor: models.SubjectDescriptor{Name: name, Type: subjType, Grade: grade},
		Status:            models.ApprovalApproved,
	}
}

func TestIsApprovedContainment(t *testing.T) {
	repo := &mockApprovalRepo{approvals: []models.SubjectApproval{approvalFor("Chemistry", "IB", "11")}}
	svc := NewApprovalService(repo, &mockTutorReader{}, nil, nil, nil)

	cases := []struct {
		name    string
		subject models.SubjectDescriptor
		want    bool
	}{
		{"variant label covered", models.SubjectDescriptor{Name: "Chemistry HL", Type: "IB", Grade: "11"}, true},
		{"exact name covered", models.SubjectDescriptor{Name: "Chemistry", Type: "IB", Grade: "11"}, true},
		{"case insensitive", models.SubjectDescriptor{Name: "chemistry hl", Type: "IB", Grade: "11"}, true},
		{"different subject", models.SubjectDescriptor{Name: "Physics", Type: "IB", Grade: "11"}, false},
		{"wrong grade", models.SubjectDescriptor{Name: "Chemistry HL", Type: "IB", Grade: "12"}, false},
		{"wrong type", models.SubjectDescriptor{Name: "Chemistry HL", Type: "AP", Grade: "11"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsApproved(context.Background(), "tutor-1", tc.subject)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsApprovedAsymmetric(t *testing.T) {
	// An approval for the broader label does not work in reverse: holding
	// "Chemistry HL" does not cover plain "Chemistry".
	repo := &mockApprovalRepo{approvals: []models.SubjectApproval{approvalFor("Chemistry HL", "IB", "11")}}
	svc := NewApprovalService(repo, &mockTutorReader{}, nil, nil, nil)

	got, err := svc.IsApproved(context.Background(), "tutor-1", models.SubjectDescriptor{Name: "Chemistry", Type: "IB", Grade: "11"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestResolveCertificationApprove(t *testing.T) {
	repo := &mockApprovalRepo{requests: map[string]models.CertificationRequest{
		"req-1": {
			ID:                "req-1",
			TutorID:           "tutor-1",
			TutorName:         "Grace Hopper",
			SubjectDescriptor: models.SubjectDescriptor{Name: "Chemistry", Type: "IB", Grade: "11"},
		},
	}}
	tutors := &mockTutorReader{tutors: map[string]models.Tutor{
		"tutor-1": {ID: "tutor-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.org"},
	}}
	notifier := &mockCertNotifier{}
	svc := NewApprovalService(repo, tutors, notifier, nil, nil)

	approval, warnings, err := svc.ResolveCertification(context.Background(), "req-1", "admin-1", true)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, models.ApprovalApproved, approval.Status)
	assert.Equal(t, "admin-1", *approval.ApprovedBy)
	assert.Empty(t, repo.requests)
	assert.Equal(t, []bool{true}, notifier.decisions)

	ok, err := svc.IsApproved(context.Background(), "tutor-1", models.SubjectDescriptor{Name: "Chemistry HL", Type: "IB", Grade: "11"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolveCertificationReject(t *testing.T) {
	repo := &mockApprovalRepo{requests: map[string]models.CertificationRequest{
		"req-1": {
			ID:                "req-1",
			TutorID:           "tutor-1",
			SubjectDescriptor: models.SubjectDescriptor{Name: "Chemistry", Type: "IB", Grade: "11"},
		},
	}}
	tutors := &mockTutorReader{tutors: map[string]models.Tutor{"tutor-1": {ID: "tutor-1"}}}
	svc := NewApprovalService(repo, tutors, &mockCertNotifier{}, nil, nil)

	approval, _, err := svc.ResolveCertification(context.Background(), "req-1", "admin-1", false)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, approval.Status)

	ok, err := svc.IsApproved(context.Background(), "tutor-1", models.SubjectDescriptor{Name: "Chemistry", Type: "IB", Grade: "11"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestCertificationValidates(t *testing.T) {
	svc := NewApprovalService(&mockApprovalRepo{}, &mockTutorReader{}, nil, nil, nil)
	tutor := &models.Tutor{ID: "tutor-1", FirstName: "Grace", LastName: "Hopper"}

	_, err := svc.RequestCertification(context.Background(), tutor, CertificationRequestInput{SubjectName: "Chemistry"})
	require.Error(t, err)

	req, err := svc.RequestCertification(context.Background(), tutor, CertificationRequestInput{
		SubjectName:  "Chemistry",
		SubjectType:  "IB",
		SubjectGrade: "11",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", req.TutorName)
}
