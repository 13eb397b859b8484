package geotz

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/coocood/freecache"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneDay      = 24 * 60 * 60
	cacheExpire = oneDay
	cacheSize   = 10 * 1024 * 1024
)

var ErrNoTimezone = errors.New("no timezone for ip")

type ipLookup interface {
	Timezone(ctx context.Context, ip string) (string, error)
}

// IPInfoLookup resolves an IP timezone with the ipinfo.io API.
type IPInfoLookup struct {
	client *ipinfo.Client
}

func NewIPInfoLookup(httpClient *http.Client, token string) *IPInfoLookup {
	return &IPInfoLookup{
		client: ipinfo.NewClient(httpClient, nil, token),
	}
}

func (l *IPInfoLookup) Timezone(ctx context.Context, ip string) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "geotz.ipinfo.timezone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", ip))

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("invalid ip: %s", ip)
	}

	core, err := l.client.GetIPInfo(parsed)
	if err != nil {
		return "", fmt.Errorf("get ip info: %w", err)
	}
	if core == nil || core.Timezone == "" {
		return "", ErrNoTimezone
	}
	return core.Timezone, nil
}

// Resolver picks the user location: explicit timezone, then the client IP
// timezone (cached for a day), then the configured default.
type Resolver struct {
	lookup   ipLookup
	cache    *freecache.Cache
	fallback *time.Location
}

func NewResolver(lookup ipLookup, fallback *time.Location) *Resolver {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Resolver{
		lookup:   lookup,
		cache:    freecache.NewCache(cacheSize),
		fallback: fallback,
	}
}

func (r *Resolver) Fallback() *time.Location {
	return r.fallback
}

func (r *Resolver) Location(ctx context.Context, explicitTZ, clientIP string) *time.Location {
	if tz := strings.TrimSpace(explicitTZ); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err == nil {
			return loc
		}
		log.Debugf("geotz: ignoring invalid timezone [%s]: %s", tz, err)
	}

	if r.lookup == nil || clientIP == "" || clientIP == pkg.LocalhostIP || pkg.IPIsLocal(clientIP) {
		return r.fallback
	}

	cacheKey := []byte("tz::" + clientIP)
	if cached, err := r.cache.Get(cacheKey); err == nil {
		if loc, err := time.LoadLocation(string(cached)); err == nil {
			return loc
		}
	}

	tz, err := r.lookup.Timezone(ctx, clientIP)
	if err != nil {
		log.Debugf("geotz: timezone lookup for %s: %s", clientIP, err)
		return r.fallback
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warnf("geotz: unknown timezone [%s] for %s: %s", tz, clientIP, err)
		return r.fallback
	}

	if err := r.cache.Set(cacheKey, []byte(tz), cacheExpire); err != nil {
		log.Errorf("geotz: cache timezone for %s: %s", clientIP, err)
	}
	return loc
}
