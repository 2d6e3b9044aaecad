package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
)

// --- Mock SubmissionRepository ---

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	args := m.Called(ctx, submissionID)
	var s *domain.Submission
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Submission)
	}
	return s, args.Error(1)
}

func (m *MockSubmissionRepository) FindDraftByOrganization(ctx context.Context, organizationID string, academicYear string) (*domain.Submission, error) {
	args := m.Called(ctx, organizationID, academicYear)
	var s *domain.Submission
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Submission)
	}
	return s, args.Error(1)
}

func (m *MockSubmissionRepository) ListForReview(ctx context.Context, status *domain.SubmissionStatus, limit int, nextToken *string) ([]domain.Submission, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	var subs []domain.Submission
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Submission)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return subs, token, args.Error(2)
}

func (m *MockSubmissionRepository) SaveSubmission(ctx context.Context, submission domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) UpdateSubmission(ctx context.Context, submission domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.SubmissionStatus, submittedAt *time.Time, comment *domain.ReviewComment, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, submissionID, status, submittedAt, comment, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockSubmissionRepository) AddSupportingDocuments(ctx context.Context, submissionID string, documents []domain.SupportingDocument) error {
	args := m.Called(ctx, submissionID, documents)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	var o *domain.Organization
	if args.Get(0) != nil {
		o = args.Get(0).(*domain.Organization)
	}
	return o, args.Error(1)
}

func (m *MockOrganizationRepository) FindOrganizationByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	var o *domain.Organization
	if args.Get(0) != nil {
		o = args.Get(0).(*domain.Organization)
	}
	return o, args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	args := m.Called(ctx, limit, offset)
	var orgs []domain.Organization
	if args.Get(0) != nil {
		orgs = args.Get(0).([]domain.Organization)
	}
	return orgs, args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, organization domain.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock DocumentStore ---

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) SaveFile(ctx context.Context, storageKey string, contents io.Reader) (int64, error) {
	args := m.Called(ctx, storageKey, contents)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentStore) OpenFile(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	args := m.Called(ctx, storageKey)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	return rc, args.Error(1)
}

func (m *MockDocumentStore) RemoveFile(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

// --- Test Suite ---

type CashflowServiceTestSuite struct {
	suite.Suite
	mockSubmissionRepo *MockSubmissionRepository
	mockOrgRepo        *MockOrganizationRepository
	mockUserRepo       *MockUserRepository
	mockDocuments      *MockDocumentStore
	service            portssvc.CashflowSvcFacade

	treasurer domain.Actor
	reviewer  domain.Actor
	org       *domain.Organization
}

func (suite *CashflowServiceTestSuite) SetupTest() {
	suite.mockSubmissionRepo = new(MockSubmissionRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockDocuments = new(MockDocumentStore)
	suite.service = services.NewCashflowService(
		suite.mockSubmissionRepo,
		suite.mockOrgRepo,
		suite.mockUserRepo,
		suite.mockDocuments,
		10*1024*1024,
	)

	suite.treasurer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleTreasurer}
	suite.reviewer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCOA}
	suite.org = &domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           "Engineering Society",
		AcademicYear:   "2024-2025",
		IsActive:       true,
	}
}

func (suite *CashflowServiceTestSuite) treasurerUser() *domain.User {
	return &domain.User{
		UserID:         suite.treasurer.UserID,
		Role:           domain.RoleTreasurer,
		OrganizationID: suite.org.OrganizationID,
	}
}

func validInput() dto.ParsedSubmissionInput {
	return dto.ParsedSubmissionInput{
		Form: domain.CashFlowForm{
			OrganizationName: "Engineering Society",
			AcademicYear:     "2024-2025",
			Month:            "January",
			CashInflows: domain.CashInflows{
				CashReceiptSources: []domain.LineItem{{Description: "Membership fees"}},
			},
		},
	}
}

// --- SaveDraft Tests ---

func (suite *CashflowServiceTestSuite) TestSaveDraft_CreatesNewDraft() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindDraftByOrganization", ctx, suite.org.OrganizationID, "2024-2025").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.MatchedBy(func(s domain.Submission) bool {
		return s.Status == domain.StatusDraft &&
			s.OrganizationID == suite.org.OrganizationID &&
			s.SubmitterID == suite.treasurer.UserID
	})).Return(nil).Once()

	submission, err := suite.service.SaveDraft(ctx, validInput(), nil, suite.treasurer)

	suite.Require().NoError(err)
	suite.Require().NotNil(submission)
	suite.Equal(domain.StatusDraft, submission.Status)
	suite.NotEmpty(submission.SubmissionID)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_ReusesExistingDraft() {
	ctx := context.Background()
	existing := &domain.Submission{
		SubmissionID:   uuid.NewString(),
		OrganizationID: suite.org.OrganizationID,
		SubmitterID:    suite.treasurer.UserID,
		Status:         domain.StatusDraft,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindDraftByOrganization", ctx, suite.org.OrganizationID, "2024-2025").Return(existing, nil).Once()
	suite.mockSubmissionRepo.On("UpdateSubmission", ctx, mock.MatchedBy(func(s domain.Submission) bool {
		return s.SubmissionID == existing.SubmissionID
	})).Return(nil).Once()

	submission, err := suite.service.SaveDraft(ctx, validInput(), nil, suite.treasurer)

	suite.Require().NoError(err)
	suite.Equal(existing.SubmissionID, submission.SubmissionID)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "SaveSubmission", mock.Anything, mock.Anything)
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_InvalidHeaderFields() {
	ctx := context.Background()
	input := validInput()
	input.Form.Month = "Januember"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()

	submission, err := suite.service.SaveDraft(ctx, input, nil, suite.treasurer)

	suite.Require().Error(err)
	suite.Nil(submission)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var fieldErr *apperrors.FieldValidationError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Contains(fieldErr.Fields, "month")
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "SaveSubmission", mock.Anything, mock.Anything)
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_NormalizesLegacyOutflows() {
	ctx := context.Background()
	input := validInput()
	input.Form.CashOutflows = domain.CashOutflows{
		OrganizationAllocations: []domain.LedgerEntry{
			{Details: "Sports fest", Amount: domain.AmountFromString("₱1,000.00")},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindDraftByOrganization", ctx, suite.org.OrganizationID, "2024-2025").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.MatchedBy(func(s domain.Submission) bool {
		// Legacy ledger lists are folded into the activity shape before persisting.
		return len(s.Form.CashOutflows.Activities) == 1 &&
			s.Form.CashOutflows.OrganizationAllocations == nil
	})).Return(nil).Once()

	_, err := suite.service.SaveDraft(ctx, input, nil, suite.treasurer)

	suite.Require().NoError(err)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_RejectsNonTreasurer() {
	ctx := context.Background()

	submission, err := suite.service.SaveDraft(ctx, validInput(), nil, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAuditor})

	suite.Require().Error(err)
	suite.Nil(submission)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_RejectsInactiveOrganization() {
	ctx := context.Background()
	inactive := *suite.org
	inactive.IsActive = false

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(&inactive, nil).Once()

	_, err := suite.service.SaveDraft(ctx, validInput(), nil, suite.treasurer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_RejectsNonEditableSubmission() {
	ctx := context.Background()
	input := validInput()
	submitted := &domain.Submission{
		SubmissionID:   uuid.NewString(),
		OrganizationID: suite.org.OrganizationID,
		SubmitterID:    suite.treasurer.UserID,
		Status:         domain.StatusSubmitted,
	}
	input.SubmissionID = submitted.SubmissionID

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submitted.SubmissionID).Return(submitted, nil).Once()

	_, err := suite.service.SaveDraft(ctx, input, nil, suite.treasurer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_StoresUploadedDocuments() {
	ctx := context.Background()
	files := []portssvc.UploadedFile{
		{FileName: "receipts.pdf", MimeType: "application/pdf", Size: 1024, Contents: strings.NewReader("pdf bytes")},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindDraftByOrganization", ctx, suite.org.OrganizationID, "2024-2025").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.AnythingOfType("domain.Submission")).Return(nil).Once()
	suite.mockDocuments.On("SaveFile", ctx, mock.AnythingOfType("string"), mock.Anything).Return(int64(1024), nil).Once()
	suite.mockSubmissionRepo.On("AddSupportingDocuments", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(docs []domain.SupportingDocument) bool {
		return len(docs) == 1 && docs[0].FileName == "receipts.pdf" && docs[0].SizeBytes == 1024
	})).Return(nil).Once()

	submission, err := suite.service.SaveDraft(ctx, validInput(), files, suite.treasurer)

	suite.Require().NoError(err)
	suite.Len(submission.Documents, 1)
	suite.mockDocuments.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestSaveDraft_RejectsUnsupportedFileType() {
	ctx := context.Background()
	files := []portssvc.UploadedFile{
		{FileName: "virus.exe", MimeType: "application/octet-stream", Size: 10, Contents: strings.NewReader("x")},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.org.OrganizationID).Return(suite.org, nil).Once()
	suite.mockSubmissionRepo.On("FindDraftByOrganization", ctx, suite.org.OrganizationID, "2024-2025").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.AnythingOfType("domain.Submission")).Return(nil).Once()

	_, err := suite.service.SaveDraft(ctx, validInput(), files, suite.treasurer)

	suite.Require().Error(err)
	var fieldErr *apperrors.FieldValidationError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Contains(fieldErr.Fields, "supporting_documents")
	suite.mockDocuments.AssertNotCalled(suite.T(), "SaveFile", mock.Anything, mock.Anything, mock.Anything)
}

// --- Submit Tests ---

func (suite *CashflowServiceTestSuite) TestSubmit_MovesDraftToSubmitted() {
	ctx := context.Background()
	draft := &domain.Submission{
		SubmissionID: uuid.NewString(),
		SubmitterID:  suite.treasurer.UserID,
		Status:       domain.StatusDraft,
		Form:         validInput().Form,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, draft.SubmissionID).Return(draft, nil).Once()
	suite.mockSubmissionRepo.On("UpdateSubmissionStatus", ctx, draft.SubmissionID, domain.StatusSubmitted, mock.Anything, (*domain.ReviewComment)(nil), suite.treasurer.UserID, mock.Anything).Return(nil).Once()

	submission, err := suite.service.Submit(ctx, draft.SubmissionID, suite.treasurer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, submission.Status)
	suite.NotNil(submission.SubmittedAt)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestSubmit_ResubmitsReturnedSubmission() {
	ctx := context.Background()
	returned := &domain.Submission{
		SubmissionID: uuid.NewString(),
		SubmitterID:  suite.treasurer.UserID,
		Status:       domain.StatusReturned,
		Form:         validInput().Form,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, returned.SubmissionID).Return(returned, nil).Once()
	suite.mockSubmissionRepo.On("UpdateSubmissionStatus", ctx, returned.SubmissionID, domain.StatusSubmitted, mock.Anything, (*domain.ReviewComment)(nil), suite.treasurer.UserID, mock.Anything).Return(nil).Once()

	submission, err := suite.service.Submit(ctx, returned.SubmissionID, suite.treasurer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, submission.Status)
}

func (suite *CashflowServiceTestSuite) TestSubmit_RejectsDoubleSubmit() {
	ctx := context.Background()
	submitted := &domain.Submission{
		SubmissionID: uuid.NewString(),
		SubmitterID:  suite.treasurer.UserID,
		Status:       domain.StatusSubmitted,
		Form:         validInput().Form,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submitted.SubmissionID).Return(submitted, nil).Once()

	_, err := suite.service.Submit(ctx, submitted.SubmissionID, suite.treasurer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "UpdateSubmissionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashflowServiceTestSuite) TestSubmit_RejectsOtherUsersSubmission() {
	ctx := context.Background()
	draft := &domain.Submission{
		SubmissionID: uuid.NewString(),
		SubmitterID:  uuid.NewString(),
		Status:       domain.StatusDraft,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, draft.SubmissionID).Return(draft, nil).Once()

	_, err := suite.service.Submit(ctx, draft.SubmissionID, suite.treasurer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Review Tests ---

func (suite *CashflowServiceTestSuite) TestReview_ApprovesSubmittedForm() {
	ctx := context.Background()
	now := time.Now().UTC()
	submitted := &domain.Submission{
		SubmissionID: uuid.NewString(),
		Status:       domain.StatusSubmitted,
		SubmittedAt:  &now,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submitted.SubmissionID).Return(submitted, nil).Once()
	suite.mockSubmissionRepo.On("UpdateSubmissionStatus", ctx, submitted.SubmissionID, domain.StatusApproved, submitted.SubmittedAt, mock.MatchedBy(func(c *domain.ReviewComment) bool {
		return c != nil && c.Action == domain.StatusApproved && c.ReviewerID == suite.reviewer.UserID
	}), suite.reviewer.UserID, mock.Anything).Return(nil).Once()

	submission, err := suite.service.Review(ctx, submitted.SubmissionID, domain.StatusApproved, "All receipts in order", suite.reviewer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, submission.Status)
	suite.Len(submission.ReviewComments, 1)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestReview_RequiresCommentsOnReturn() {
	ctx := context.Background()

	_, err := suite.service.Review(ctx, uuid.NewString(), domain.StatusReturned, "", suite.reviewer)

	suite.Require().Error(err)
	var fieldErr *apperrors.FieldValidationError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Contains(fieldErr.Fields, "comments")
}

func (suite *CashflowServiceTestSuite) TestReview_RejectsNonReviewer() {
	ctx := context.Background()

	_, err := suite.service.Review(ctx, uuid.NewString(), domain.StatusApproved, "", suite.treasurer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashflowServiceTestSuite) TestReview_RejectsInvalidTransition() {
	ctx := context.Background()
	draft := &domain.Submission{
		SubmissionID: uuid.NewString(),
		Status:       domain.StatusDraft,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, draft.SubmissionID).Return(draft, nil).Once()

	_, err := suite.service.Review(ctx, draft.SubmissionID, domain.StatusApproved, "looks fine", suite.reviewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashflowServiceTestSuite) TestReview_RejectsUnknownDecision() {
	ctx := context.Background()

	_, err := suite.service.Review(ctx, uuid.NewString(), domain.StatusDraft, "", suite.reviewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListReviewQueue Tests ---

func (suite *CashflowServiceTestSuite) TestListReviewQueue_ReturnsPage() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	subs := []domain.Submission{
		{SubmissionID: uuid.NewString(), SubmitterID: submitterID, Status: domain.StatusSubmitted, Form: validInput().Form},
	}
	token := "next-page"

	suite.mockSubmissionRepo.On("ListForReview", ctx, (*domain.SubmissionStatus)(nil), 20, (*string)(nil)).Return(subs, &token, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, submitterID).Return(&domain.User{UserID: submitterID, Username: "treasurer1"}, nil).Once()

	page, err := suite.service.ListReviewQueue(ctx, suite.reviewer, dto.ListReviewParams{})

	suite.Require().NoError(err)
	suite.Require().Len(page.Submissions, 1)
	suite.Equal("treasurer1", page.Submissions[0].Submitter.Username)
	suite.Require().NotNil(page.NextToken)
	suite.Equal(token, *page.NextToken)
}

func (suite *CashflowServiceTestSuite) TestListReviewQueue_RejectsTreasurer() {
	ctx := context.Background()

	_, err := suite.service.ListReviewQueue(ctx, suite.treasurer, dto.ListReviewParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashflowServiceTestSuite) TestListReviewQueue_RejectsUnknownStatusFilter() {
	ctx := context.Background()

	_, err := suite.service.ListReviewQueue(ctx, suite.reviewer, dto.ListReviewParams{Status: "pending"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetSubmissionByID Tests ---

func (suite *CashflowServiceTestSuite) TestGetSubmissionByID_AllowsSubmitter() {
	ctx := context.Background()
	s := &domain.Submission{
		SubmissionID: uuid.NewString(),
		SubmitterID:  suite.treasurer.UserID,
		Status:       domain.StatusSubmitted,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, s.SubmissionID).Return(s, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.treasurer.UserID).Return(suite.treasurerUser(), nil).Once()

	got, submitter, err := suite.service.GetSubmissionByID(ctx, s.SubmissionID, suite.treasurer)

	suite.Require().NoError(err)
	suite.Equal(s.SubmissionID, got.SubmissionID)
	suite.Equal(suite.treasurer.UserID, submitter.UserID)
}

func (suite *CashflowServiceTestSuite) TestGetSubmissionByID_RejectsOutsider() {
	ctx := context.Background()
	outsider := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleTreasurer}
	s := &domain.Submission{
		SubmissionID:   uuid.NewString(),
		SubmitterID:    suite.treasurer.UserID,
		OrganizationID: suite.org.OrganizationID,
		Status:         domain.StatusSubmitted,
	}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, s.SubmissionID).Return(s, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, outsider.UserID).Return(&domain.User{UserID: outsider.UserID, Role: domain.RoleTreasurer, OrganizationID: uuid.NewString()}, nil).Once()

	_, _, err := suite.service.GetSubmissionByID(ctx, s.SubmissionID, outsider)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestCashflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashflowServiceTestSuite))
}
