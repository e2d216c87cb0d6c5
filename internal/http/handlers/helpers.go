package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 8 << 20

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// decodeJSON reads exactly one JSON document into dst and rejects fields dst
// does not declare.
func decodeJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return apierr.ValidationField("body", "is required")
	}
	dec := json.NewDecoder(io.LimitReader(c.Request.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return apierr.ValidationField("body", "must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apierr.ValidationField("body", "is required")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apierr.ValidationField(typeErr.Field, fmt.Sprintf("must be %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		return apierr.ValidationField("body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apierr.ValidationField(field, "is not allowed")
	}
	return apierr.ValidationField("body", err.Error())
}

// pathID parses a uuid path parameter. A malformed id cannot name a row, so it
// answers 404 for entity.
func pathID(c *gin.Context, name, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.NotFound(entity)
	}
	return id, nil
}

// detached keeps the request's values but not its cancellation, so a
// transaction already issued runs to completion if the client leaves.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func callerID(c *gin.Context) *uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return nil
	}
	id := rd.UserID
	return &id
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.ValidationField(key, "must be an integer")
	}
	return n, nil
}

func queryIntPtr(c *gin.Context, key string) (*int, error) {
	if strings.TrimSpace(c.Query(key)) == "" {
		return nil, nil
	}
	n, err := queryInt(c, key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apierr.ValidationField(key, "must be a number")
	}
	return &d, nil
}

func queryUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierr.ValidationField(key, "must be a uuid")
	}
	return &id, nil
}

// queryList accepts repeated keys and comma separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierr.ValidationField(key, "must be true or false")
	}
	return b, nil
}
