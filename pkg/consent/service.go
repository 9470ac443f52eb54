package consent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/observe"
	"github.com/tendant/simple-consent/pkg/pipeline"
	"github.com/tendant/simple-consent/pkg/results"
)

// Service implements consent-record management on top of a Repository.
// Every method reports failure through the Result channel; none of them
// return a bare error.
type Service struct {
	repo     Repository
	now      func() time.Time
	validate func(any) results.Result[Record]
}

// NewService creates a consent service.
func NewService(repo Repository) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	s.validate = pipeline.Validation(createConsentSchema(), s.buildRecord)
	return s
}

// createConsentSchema describes the consent creation payload. Purposes
// map purpose names to allow/deny booleans.
func createConsentSchema() *openapi3.Schema {
	purposes := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewBoolSchema())
	purposes.MinProps = 1

	schema := openapi3.NewObjectSchema().
		WithProperty("subjectId", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("domain", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("purposes", purposes).
		WithProperty("policyVersion", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("ttlDays", openapi3.NewFloat64Schema().WithMin(1))
	schema.Required = []string{"subjectId", "domain", "purposes", "policyVersion"}
	return schema
}

type createRequest struct {
	SubjectID     string          `json:"subjectId"`
	Domain        string          `json:"domain"`
	Purposes      map[string]bool `json:"purposes"`
	PolicyVersion string          `json:"policyVersion"`
	TTLDays       float64         `json:"ttlDays"`
}

// buildRecord is the validation pipeline's transformer: it turns the
// schema-validated payload into a new Record.
func (s *Service) buildRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Record{}, err
	}
	var req createRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return Record{}, err
	}

	now := s.now()
	record := Record{
		ID:            uuid.New(),
		SubjectID:     req.SubjectID,
		Domain:        req.Domain,
		Purposes:      req.Purposes,
		PolicyVersion: req.PolicyVersion,
		Status:        StatusActive,
		GivenAt:       now,
		UpdatedAt:     now,
	}
	if req.TTLDays > 0 {
		expires := now.Add(time.Duration(req.TTLDays) * 24 * time.Hour)
		record.ExpiresAt = &expires
	}
	return record, nil
}

// CreateConsent validates the untyped payload, builds a record and
// stores it.
func (s *Service) CreateConsent(ctx context.Context, input any) results.Result[Response] {
	return results.AndThen(s.validate(input), func(record Record) results.Result[Response] {
		var stored Record
		err := observe.WithSpan(ctx, "consent.repo.create", func(ctx context.Context) error {
			var repoErr error
			stored, repoErr = s.repo.Create(ctx, record)
			return repoErr
		})
		if err != nil {
			return results.Failure[Response](errs.Ensure(err, errs.CodeDatabaseQueryError))
		}
		return results.Ok(toResponse(stored))
	})
}

// GetConsent retrieves a consent record by ID with not-found semantics:
// an unknown ID resolves to a not found / 404 failure.
func (s *Service) GetConsent(ctx context.Context, id string) *results.Async[Response] {
	get := pipeline.Retrieval(s.fetchByID(id), func(v any) (Response, error) {
		return toResponse(*v.(*Record)), nil
	})
	return get(ctx)
}

// WithdrawConsent marks an active consent record as withdrawn.
// Withdrawing twice is a conflict.
func (s *Service) WithdrawConsent(ctx context.Context, id string) *results.Async[Response] {
	get := pipeline.Retrieval(s.fetchByID(id), func(v any) (Record, error) {
		return *v.(*Record), nil
	})
	return results.AndThenAsync(get(ctx), func(record Record) results.Result[Response] {
		if record.Status == StatusWithdrawn {
			return results.Fail[Response]("consent already withdrawn", errs.Options{
				Code:     errs.CodeConflict,
				Status:   409,
				Category: errs.CategoryConsent,
				Meta:     map[string]any{"consentId": record.ID.String()},
			})
		}
		record.Status = StatusWithdrawn
		record.UpdatedAt = s.now()

		updated, err := s.repo.Update(ctx, record)
		if err != nil {
			return results.Failure[Response](errs.Ensure(err, errs.CodeDatabaseQueryError))
		}
		return results.Ok(toResponse(updated))
	})
}

// ListConsents returns all consent records for a subject, newest first.
func (s *Service) ListConsents(ctx context.Context, subjectID string) results.Result[[]Response] {
	if subjectID == "" {
		return results.Fail[[]Response]("subjectId is required", errs.Options{
			Code:     errs.CodeInvalidRequest,
			Status:   400,
			Category: errs.CategoryValidation,
		})
	}

	listed := results.TryCatch(func() ([]Record, error) {
		return s.repo.ListBySubject(ctx, subjectID)
	}, errs.CodeDatabaseQueryError, nil)

	return results.Map(listed, func(records []Record) []Response {
		out := make([]Response, 0, len(records))
		for _, record := range records {
			out = append(out, toResponse(record))
		}
		return out
	})
}

// VerifyConsent checks whether a subject currently allows a purpose for
// a domain. A missing or expired consent record is recovered into a
// deny-all verdict rather than surfaced as a failure; storage errors
// still fail.
func (s *Service) VerifyConsent(ctx context.Context, subjectID, domain, purpose string) results.Result[Verdict] {
	looked := s.lookupVerdict(ctx, subjectID, domain, purpose)
	return results.WithFallbackForCodes(ctx, looked,
		[]errs.Code{errs.CodeConsentNotFound, errs.CodeConsentExpired},
		denyAll("no active consent for subject and domain"))
}

func (s *Service) lookupVerdict(ctx context.Context, subjectID, domain, purpose string) results.Result[Verdict] {
	record, err := s.repo.FindActive(ctx, subjectID, domain)
	if errors.Is(err, ErrRecordNotFound) {
		return results.Fail[Verdict]("no consent record", errs.Options{
			Code:     errs.CodeConsentNotFound,
			Status:   404,
			Category: errs.CategoryConsent,
			Meta:     map[string]any{"subjectId": subjectID, "domain": domain},
		})
	}
	if err != nil {
		return results.Failure[Verdict](errs.Ensure(err, errs.CodeDatabaseQueryError))
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(s.now()) {
		return results.Fail[Verdict]("consent has expired", errs.Options{
			Code:     errs.CodeConsentExpired,
			Status:   410,
			Category: errs.CategoryConsent,
			Meta:     map[string]any{"consentId": record.ID.String()},
		})
	}

	verdict := Verdict{
		Allowed:       record.Purposes[purpose],
		Reason:        "purpose allowed",
		Purposes:      record.Purposes,
		PolicyVersion: record.PolicyVersion,
	}
	if !verdict.Allowed {
		verdict.Reason = "purpose rejected by subject"
	}
	return results.Ok(verdict)
}

// fetchByID adapts repository lookup to the retrieval pipeline: a missing
// record resolves to nil data, which the pipeline maps to not found.
func (s *Service) fetchByID(id string) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, errs.New("invalid consent id", errs.Options{
				Code:     errs.CodeBadRequest,
				Status:   400,
				Category: errs.CategoryValidation,
				Cause:    err,
				Meta:     map[string]any{"consentId": id},
			})
		}

		var record Record
		err = observe.WithSpan(ctx, "consent.repo.get", func(ctx context.Context) error {
			var repoErr error
			record, repoErr = s.repo.Get(ctx, uid)
			return repoErr
		})
		if errors.Is(err, ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &record, nil
	}
}

func toResponse(record Record) Response {
	var resp Response
	copier.Copy(&resp, &record)
	resp.ID = record.ID.String()
	resp.Status = string(record.Status)
	return resp
}
