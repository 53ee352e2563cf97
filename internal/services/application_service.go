package services

import (
	"errors"
	"strings"

	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrAlreadyApplied           = errors.New("you have already applied to this job")
	ErrApplicationFieldsMissing = errors.New("cover letter and availability are required")
	ErrNotPostingOwner          = errors.New("application does not belong to one of your postings")
	ErrNoActivePostings         = errors.New("no active job postings available")
	ErrAlreadyAccepted          = errors.New("applicant has already been hired")
	ErrInvalidAssignTarget      = errors.New("selected posting is not one of your active postings")
)

// ApplicationService coordinates the applicant workflow: apply, accept,
// assignment across postings, and reject with capacity reversal.
//
// State machine per application: pending -> accepted | rejected, and
// accepted -> rejected (un-hire). Accepting clears a prior rejection, so the
// latest organizer action always wins; an application is never accepted and
// rejected at once because status is a single field.
type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

// ApplyInput represents a staff member's application to a posting.
type ApplyInput struct {
	JobID        uint64
	ApplicantID  uint64
	CoverLetter  string
	Availability string
}

// Apply submits an application. A second application by the same user for
// the same job is refused and the first record is left untouched.
func (s *ApplicationService) Apply(input ApplyInput) (*models.Application, error) {
	if strings.TrimSpace(input.CoverLetter) == "" || strings.TrimSpace(input.Availability) == "" {
		return nil, ErrApplicationFieldsMissing
	}

	if _, err := s.jobRepo.FindByID(input.JobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, classifyRepoError(err, "failed to find posting")
	}

	if _, err := s.appRepo.FindByJobAndApplicant(input.JobID, input.ApplicantID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyRepoError(err, "failed to check existing application")
	}

	app := &models.Application{
		JobID:        input.JobID,
		ApplicantID:  input.ApplicantID,
		CoverLetter:  input.CoverLetter,
		Availability: input.Availability,
		Status:       models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(app); err != nil {
		// The unique (job_id, applicant_id) index backstops the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, classifyRepoError(err, "failed to create application")
	}

	return app, nil
}

// AcceptResult is the outcome of an accept call. When the organizer has more
// than one active posting the hire is deferred: PendingAssignment is set, no
// state is mutated, and ActivePostings carries the choices for the required
// Assign follow-up.
type AcceptResult struct {
	Application       *models.Application
	PendingAssignment bool
	ActivePostings    []models.JobPosting
}

// Accept hires an applicant. With exactly one active posting the hire is
// committed against it directly; with several, an explicit target must be
// supplied via Assign; with none, the accept fails.
func (s *ApplicationService) Accept(applicationID, actorID uint64) (*AcceptResult, error) {
	app, err := s.loadOwnedApplication(applicationID, actorID)
	if err != nil {
		return nil, err
	}

	if app.Status == models.ApplicationStatusAccepted {
		return nil, ErrAlreadyAccepted
	}

	active, err := s.jobRepo.ListActiveByOrganizer(actorID)
	if err != nil {
		return nil, classifyRepoError(err, "failed to list active postings")
	}

	switch len(active) {
	case 0:
		return nil, ErrNoActivePostings
	case 1:
		if err := s.commitHire(app, &active[0]); err != nil {
			return nil, err
		}
		return &AcceptResult{Application: app}, nil
	default:
		return &AcceptResult{
			Application:       app,
			PendingAssignment: true,
			ActivePostings:    active,
		}, nil
	}
}

// Assign commits a deferred hire against an explicitly chosen posting. Only
// the organizer's own active postings are valid targets.
func (s *ApplicationService) Assign(applicationID, jobID, actorID uint64) (*models.Application, error) {
	app, err := s.loadOwnedApplication(applicationID, actorID)
	if err != nil {
		return nil, err
	}

	if app.Status == models.ApplicationStatusAccepted {
		return nil, ErrAlreadyAccepted
	}

	target, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignTarget
		}
		return nil, classifyRepoError(err, "failed to find posting")
	}

	if target.OrganizerID != actorID || target.Status != models.PostingStatusActive {
		return nil, ErrInvalidAssignTarget
	}

	if err := s.commitHire(app, target); err != nil {
		return nil, err
	}

	return app, nil
}

// Reject marks an application rejected. A previously committed hire is
// reversed: the target posting's hired count drops (floored at zero), its
// status is rederived so a filled posting reopens, and the mapping clears.
func (s *ApplicationService) Reject(applicationID, actorID uint64) (*models.Application, error) {
	app, err := s.loadOwnedApplication(applicationID, actorID)
	if err != nil {
		return nil, err
	}

	if app.AssignedJobID != nil {
		posting, err := s.jobRepo.FindByID(*app.AssignedJobID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classifyRepoError(err, "failed to find hired posting")
		}

		app.Status = models.ApplicationStatusRejected
		app.AssignedJobID = nil

		if posting != nil {
			posting.Hired--
			if posting.Hired < 0 {
				posting.Hired = 0
			}
			posting.RecomputeStatus()

			if err := s.appRepo.SaveWithPosting(app, posting); err != nil {
				return nil, classifyRepoError(err, "failed to reverse hire")
			}
			return app, nil
		}
	}

	app.Status = models.ApplicationStatusRejected
	app.AssignedJobID = nil

	if err := s.appRepo.Update(app); err != nil {
		return nil, classifyRepoError(err, "failed to reject application")
	}

	return app, nil
}

// ListApplicants returns the applicants across an organizer's postings,
// newest first. Rejected applicants are hidden from this view; the records
// themselves are retained.
func (s *ApplicationService) ListApplicants(organizerID uint64) ([]models.Application, error) {
	apps, err := s.appRepo.ListByOrganizer(organizerID, true)
	if err != nil {
		return nil, classifyRepoError(err, "failed to list applicants")
	}
	return apps, nil
}

// ListApplicantsForPosting returns the non-rejected applicants for one posting.
func (s *ApplicationService) ListApplicantsForPosting(jobID uint64) ([]models.Application, error) {
	apps, err := s.appRepo.ListByJob(jobID, true)
	if err != nil {
		return nil, classifyRepoError(err, "failed to list applicants")
	}
	return apps, nil
}

// ListApplications returns a staff member's own applications, newest first.
func (s *ApplicationService) ListApplications(applicantID uint64) ([]models.Application, error) {
	apps, err := s.appRepo.ListByApplicant(applicantID)
	if err != nil {
		return nil, classifyRepoError(err, "failed to list applications")
	}
	return apps, nil
}

// commitHire records the applicant->posting mapping and bumps the target's
// capacity in one transaction, then rederives its status.
func (s *ApplicationService) commitHire(app *models.Application, posting *models.JobPosting) error {
	app.Status = models.ApplicationStatusAccepted
	jobID := posting.ID
	app.AssignedJobID = &jobID

	posting.Hired++
	posting.RecomputeStatus()

	if err := s.appRepo.SaveWithPosting(app, posting); err != nil {
		return classifyRepoError(err, "failed to commit hire")
	}

	return nil
}

// loadOwnedApplication loads an application and verifies the actor owns the
// posting it was submitted to.
func (s *ApplicationService) loadOwnedApplication(applicationID, actorID uint64) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID, "Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, classifyRepoError(err, "failed to find application")
	}

	if app.Job.OrganizerID != actorID {
		return nil, ErrNotPostingOwner
	}

	return app, nil
}
