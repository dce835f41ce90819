package handler

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

func queryString(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryTime(ctx *fasthttp.RequestCtx, key string) *time.Time {
	value := queryString(ctx, key)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryDecimal(ctx *fasthttp.RequestCtx, key string) *decimal.Decimal {
	value := queryString(ctx, key)
	if value == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryIntPtr(ctx *fasthttp.RequestCtx, key string) *int {
	value := queryString(ctx, key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryBool(ctx *fasthttp.RequestCtx, key string) bool {
	parsed, err := strconv.ParseBool(queryString(ctx, key))
	return err == nil && parsed
}
