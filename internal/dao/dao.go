// Package dao exposes one data-access object per entity of the REST backend.
// Every method is a single round trip; failures come back as *errors.Error
// values whose message can be shown to the user as is.
package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/client"
	"github.com/noah-isme/scolarite-dao/internal/models"
	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

// DAO is the contract shared by the entity DAOs.
type DAO[T any] interface {
	Create(ctx context.Context, data T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, data T) (*T, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]T, error)
}

type requester interface {
	Do(ctx context.Context, method, path string, body interface{}) (*client.Response, error)
}

type callObserver interface {
	ObserveCall(entity, operation string, err error, duration time.Duration)
}

// operation describes how a failed call is reported.
type operation struct {
	name     string
	kind     *appErrors.Error
	fallback string
	// detailed surfaces the backend or transport detail instead of the fallback.
	detailed bool
}

// messages holds the localized fallbacks of the five CRUD operations.
type messages struct {
	create string
	get    string
	update string
	delete string
	list   string
}

// resource is the CRUD core shared by the entity DAOs.
type resource[T models.Identifiable] struct {
	entity   string
	path     string
	envelope string
	msgs     messages
	client   requester
	logger   *zap.Logger
	metrics  callObserver
}

func newResource[T models.Identifiable](entity, path, envelope string, msgs messages, c requester, logger *zap.Logger, metrics callObserver) *resource[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resource[T]{
		entity:   entity,
		path:     path,
		envelope: envelope,
		msgs:     msgs,
		client:   c,
		logger:   logger.With(zap.String("entity", entity)),
		metrics:  metrics,
	}
}

func (r *resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r *resource[T]) create(ctx context.Context, payload interface{}) (*T, error) {
	op := operation{name: "create", kind: appErrors.ErrCreationFailed, fallback: r.msgs.create, detailed: true}
	return r.one(ctx, op, http.MethodPost, r.path, payload)
}

func (r *resource[T]) get(ctx context.Context, id int64) (*T, error) {
	op := operation{name: "get", kind: appErrors.ErrRetrievalFailed, fallback: r.msgs.get}
	return r.one(ctx, op, http.MethodGet, r.itemPath(id), nil)
}

func (r *resource[T]) update(ctx context.Context, id int64, payload interface{}) (*T, error) {
	op := operation{name: "update", kind: appErrors.ErrUpdateFailed, fallback: r.msgs.update, detailed: true}
	return r.one(ctx, op, http.MethodPut, r.itemPath(id), payload)
}

func (r *resource[T]) delete(ctx context.Context, id int64) error {
	op := operation{name: "delete", kind: appErrors.ErrDeletionFailed, fallback: r.msgs.delete}
	start := time.Now()
	_, err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil)
	if err != nil {
		err = r.failure(op, err)
	}
	r.observe(op, start, err)
	return err
}

func (r *resource[T]) list(ctx context.Context) ([]T, error) {
	op := operation{name: "list", kind: appErrors.ErrListFailed, fallback: r.msgs.list}
	return r.many(ctx, op, r.path)
}

// one performs a call answering a single entity, bare or wrapped under the envelope key.
func (r *resource[T]) one(ctx context.Context, op operation, method, path string, body interface{}) (*T, error) {
	start := time.Now()
	resp, err := r.client.Do(ctx, method, path, body)
	var item *T
	if err == nil {
		item, err = r.decodeOne(resp.Body)
	}
	if err != nil {
		item = nil
		err = r.failure(op, err)
	}
	r.observe(op, start, err)
	return item, err
}

// many performs a GET answering a collection, sorted ascending by id.
func (r *resource[T]) many(ctx context.Context, op operation, path string) ([]T, error) {
	start := time.Now()
	resp, err := r.client.Do(ctx, http.MethodGet, path, nil)
	var items []T
	if err == nil {
		items, err = r.decodeMany(resp.Body)
	}
	if err != nil {
		items = nil
		err = r.failure(op, err)
	}
	r.observe(op, start, err)
	return items, err
}

func (r *resource[T]) decodeOne(body []byte) (*T, error) {
	if isEmpty(body) {
		return nil, fmt.Errorf("decode %s: empty body", r.entity)
	}
	var item T
	if err := json.Unmarshal(models.Unwrap(body, r.envelope), &item); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.entity, err)
	}
	return &item, nil
}

func (r *resource[T]) decodeMany(body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", r.entity, err)
	}
	if items == nil {
		return nil, fmt.Errorf("decode %s list: expected an array", r.entity)
	}
	sortByID(items)
	return items, nil
}

func (r *resource[T]) failure(op operation, cause error) error {
	status := client.StatusCode(cause)
	message := op.fallback
	if op.detailed {
		message = detailedMessage(cause, op.fallback)
	}
	r.logger.Warn("dao_call_failed",
		zap.String("operation", op.name),
		zap.Int("status", status),
		zap.Error(cause),
	)
	return appErrors.Wrap(cause, op.kind.Code, status, message)
}

func (r *resource[T]) observe(op operation, start time.Time, err error) {
	if r.metrics != nil {
		r.metrics.ObserveCall(r.entity, op.name, err, time.Since(start))
	}
}

// detailedMessage prefers the backend "error" field, then its "message" field,
// then the transport failure text, then fallback.
func detailedMessage(err error, fallback string) string {
	var be *client.BackendError
	if errors.As(err, &be) {
		switch {
		case be.ErrorField != "":
			return be.ErrorField
		case be.MessageField != "":
			return be.MessageField
		}
		return fallback
	}
	var te *client.TransportError
	if errors.As(err, &te) && te.Error() != "" {
		return te.Error()
	}
	return fallback
}

// sortByID orders items ascending by id; unassigned ids count as 0.
func sortByID[T models.Identifiable](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Identifier() < items[j].Identifier()
	})
}

func isEmpty(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
