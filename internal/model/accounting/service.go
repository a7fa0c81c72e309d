// Package accounting is the operation boundary of the ledger. Every
// operation resolves the acting account through the session (failing closed
// when logged out), runs under a tracing span, feeds the latency histogram,
// and converts domain errors into user-facing messages. Errors never
// propagate past this package except for logging.
package accounting

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/logger"
	"max.ks1230/accounting/internal/model/customerr"
	"max.ks1230/accounting/internal/model/records"
	"max.ks1230/accounting/internal/model/session"
	"max.ks1230/accounting/internal/model/stats"
)

const categoryTotalsOption = "category-totals"

var reportOptions = []string{categoryTotalsOption}

//go:generate minimock -i reportCache -o ./mock/report_cache_mock.go -n ReportCacheMock

type reportCache interface {
	GetReport(owner, option string) (string, error)
	CacheReport(owner, option, report string) error
	InvalidateReports(owner string, options []string) error
}

type Service struct {
	session *session.Service
	records *records.Service
	stats   *stats.Service
	cache   reportCache
}

func NewService(session *session.Service, records *records.Service, stats *stats.Service, cache reportCache) *Service {
	return &Service{
		session: session,
		records: records,
		stats:   stats,
		cache:   cache,
	}
}

func (s *Service) Register(ctx context.Context, name, secret string) (string, error) {
	return s.run(ctx, "register", func(ctx context.Context) (string, error) {
		if err := s.session.Register(ctx, name, secret); err != nil {
			return messageFor(err), err
		}
		return registeredMessage, nil
	})
}

func (s *Service) Login(ctx context.Context, name, secret string) (string, error) {
	return s.run(ctx, "login", func(ctx context.Context) (string, error) {
		if err := s.session.Login(ctx, name, secret); err != nil {
			return messageFor(err), err
		}
		return welcomeMessage + strings.ToUpper(name), nil
	})
}

func (s *Service) Logout() string {
	s.session.Logout()
	return loggedOutMessage
}

func (s *Service) LoggedIn() bool {
	return s.session.LoggedIn()
}

func (s *Service) AddRecord(ctx context.Context, v ledger.Variant, in records.Input) (string, error) {
	return s.run(ctx, "add_"+v.String(), func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}
		if _, err = s.records.Add(ctx, owner, v, in); err != nil {
			return messageFor(err), err
		}
		s.invalidateReports(owner)
		return savedMessage, nil
	})
}

// ListAll renders income records then expense records, newest date first,
// for the acting account.
func (s *Service) ListAll(ctx context.Context) (string, error) {
	return s.run(ctx, "list_all", func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}

		sections := make([]string, 0, 2)
		for _, v := range ledger.Variants() {
			recs, err := s.records.List(ctx, owner, v)
			if err != nil {
				return messageFor(err), err
			}
			sections = append(sections, renderRecords(v.Label()+" records:", recs))
		}
		return strings.Join(sections, "\n\n"), nil
	})
}

func (s *Service) UpdateRecord(ctx context.Context, v ledger.Variant, idRaw string, in records.Input) (string, error) {
	return s.run(ctx, "update_"+v.String(), func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}
		id, err := parseID(idRaw)
		if err != nil {
			return messageFor(err), err
		}
		if err = s.records.Update(ctx, owner, v, id, in); err != nil {
			return messageFor(err), err
		}
		s.invalidateReports(owner)
		return updatedMessage, nil
	})
}

func (s *Service) DeleteRecord(ctx context.Context, v ledger.Variant, idRaw string) (string, error) {
	return s.run(ctx, "delete_"+v.String(), func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}
		id, err := parseID(idRaw)
		if err != nil {
			return messageFor(err), err
		}
		if err = s.records.Delete(ctx, owner, v, id); err != nil {
			return messageFor(err), err
		}
		s.invalidateReports(owner)
		return deletedMessage, nil
	})
}

func (s *Service) RecordsByRange(ctx context.Context, v ledger.Variant, from, to string) (string, error) {
	return s.run(ctx, "range_"+v.String(), func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}
		recs, err := s.stats.ListRange(ctx, owner, v, from, to)
		if err != nil {
			return messageFor(err), err
		}
		title := v.Label() + " records " + from + " to " + to + ":"
		return renderRecords(title, recs), nil
	})
}

func (s *Service) TotalsByRange(ctx context.Context, from, to string) (string, error) {
	return s.run(ctx, "range_totals", func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}
		totals, err := s.stats.TotalsRange(ctx, owner, from, to)
		if err != nil {
			return messageFor(err), err
		}
		return renderTotals(from, to, totals), nil
	})
}

func (s *Service) TotalsByCategory(ctx context.Context) (string, error) {
	return s.run(ctx, "category_totals", func(ctx context.Context) (string, error) {
		owner, err := s.session.Current()
		if err != nil {
			return messageFor(err), err
		}

		if report, err := s.cache.GetReport(owner, categoryTotalsOption); err == nil {
			return report, nil
		}

		totals, err := s.stats.TotalsByCategory(ctx, owner)
		if err != nil {
			return messageFor(err), err
		}
		report := renderCategoryTotals(totals)
		if err = s.cache.CacheReport(owner, categoryTotalsOption, report); err != nil {
			logger.Warn("cannot cache report", zap.Error(err))
		}
		return report, nil
	})
}

func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context) (string, error)) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	start := time.Now()
	msg, err := fn(ctx)
	observeOperation(op, time.Since(start), err != nil)

	if err != nil {
		ext.Error.Set(span, true)
	}
	return msg, err
}

func (s *Service) invalidateReports(owner string) {
	if err := s.cache.InvalidateReports(owner, reportOptions); err != nil {
		logger.Warn("cannot invalidate reports", zap.Error(err))
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &customerr.ValidationError{Err: "record id must be a number"}
	}
	return id, nil
}

func messageFor(err error) string {
	var validation *customerr.ValidationError
	var notFound *customerr.NotFoundError
	var duplicate *customerr.DuplicateError

	switch {
	case errors.As(err, &validation):
		return badInputMessage
	case errors.As(err, &notFound):
		return notFoundMessage
	case errors.As(err, &duplicate):
		return nameTakenMessage
	case errors.Is(err, session.ErrLoginFailed):
		return loginFailedMessage
	case errors.Is(err, session.ErrNotLoggedIn):
		return notLoggedInMessage
	default:
		return troubleMessage
	}
}
