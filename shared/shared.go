// Package shared collects small helpers used across domains: update maps,
// id filters, cache keys and the authenticated user lookup.
package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	"rentopia/shared/cache"
	"rentopia/shared/constant"
	"rentopia/shared/dto"
	"rentopia/shared/timezone"
)

const cacheKeySeparator = ":"

// CalculateTotalPage never returns less than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns the non-zero, db tagged fields of a struct (or
// pointer to one) into an update map stamped with modified_at and modified_by.
// Fields tagged db:"-" are skipped.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	updatedFields := make(map[string]any)

	if val.Kind() == reflect.Struct {
		typ := val.Type()

		for index := range val.NumField() {
			column := typ.Field(index).Tag.Get("db")
			if column == "" || column == "-" {
				continue
			}

			if field := val.Field(index); !field.IsZero() {
				updatedFields[column] = field.Interface()
			}
		}
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a prefix and its parts into a redis key, e.g. place:get:<id>.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for list queries from their paging and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return BuildCacheKey(prefix, where)
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches drops every key under prefix. Errors are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// UserFromContext returns the authenticated user id placed by the auth middleware.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)

	return userID, ok && userID != constant.Empty
}

func Round(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))

	return math.Round(value*pow) / pow
}
