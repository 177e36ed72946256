// Package endpoints resolves PingOne token endpoints and CIAM API base
// URLs for a region/environment pair. Resolution failures are typed
// errors, never a defaulted URL.
package endpoints

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrTokenEndpointNotFound is returned when no token endpoint exists
	// for a region/environment pair.
	ErrTokenEndpointNotFound = errors.New("token endpoint not found")

	// ErrBaseURLNotFound is returned when no API base URL exists for a
	// region/environment pair.
	ErrBaseURLNotFound = errors.New("base URL not found")

	// ErrInvalidRegion is returned for a region outside the known set.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidEnvironment is returned for an environment outside the known set.
	ErrInvalidEnvironment = errors.New("invalid environment")
)

// Region identifies a CIAM deployment region.
type Region string

const (
	RegionUS  Region = "us"
	RegionUK  Region = "uk"
	RegionCAN Region = "can"
	RegionANZ Region = "anz"
)

// Environment identifies a CIAM deployment environment.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvQA   Environment = "qa"
	EnvUAT  Environment = "uat"
	EnvProd Environment = "prod"
)

// Regions returns all known regions in display order.
func Regions() []Region {
	return []Region{RegionUS, RegionUK, RegionCAN, RegionANZ}
}

// Environments returns all known environments in display order.
func Environments() []Environment {
	return []Environment{EnvDev, EnvQA, EnvUAT, EnvProd}
}

// ParseRegion normalizes and validates a region string.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RegionUS, RegionUK, RegionCAN, RegionANZ:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q (valid: us, uk, can, anz)", ErrInvalidRegion, s)
}

// ParseEnvironment normalizes and validates an environment string.
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EnvDev, EnvQA, EnvUAT, EnvProd:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q (valid: dev, qa, uat, prod)", ErrInvalidEnvironment, s)
}

type key struct {
	region Region
	env    Environment
}

// Token endpoints per region/environment. dev exists only for us.
var tokenURLs = map[key]string{
	{RegionUS, EnvDev}:   "https://auth-us-dev.pingone.com/oauth2/token",
	{RegionUS, EnvQA}:    "https://auth-us-qa.pingone.com/oauth2/token",
	{RegionUS, EnvUAT}:   "https://auth-us-uat.pingone.com/oauth2/token",
	{RegionUS, EnvProd}:  "https://auth-us.pingone.com/oauth2/token",
	{RegionUK, EnvQA}:    "https://auth-uk-qa.pingone.com/oauth2/token",
	{RegionUK, EnvUAT}:   "https://auth-uk-uat.pingone.com/oauth2/token",
	{RegionUK, EnvProd}:  "https://auth-uk.pingone.com/oauth2/token",
	{RegionCAN, EnvQA}:   "https://auth-can-qa.pingone.com/oauth2/token",
	{RegionCAN, EnvUAT}:  "https://auth-can-uat.pingone.com/oauth2/token",
	{RegionCAN, EnvProd}: "https://auth-can.pingone.com/oauth2/token",
	{RegionANZ, EnvQA}:   "https://auth-anz-qa.pingone.com/oauth2/token",
	{RegionANZ, EnvUAT}:  "https://auth-anz-uat.pingone.com/oauth2/token",
	{RegionANZ, EnvProd}: "https://auth-anz.pingone.com/oauth2/token",
}

// TODO: Replace with real CIAM base URLs once confirmed upstream.
var baseURLs = map[key]string{
	{RegionUS, EnvDev}:   "https://ciam-us-dev.example.com/api/v1",
	{RegionUS, EnvQA}:    "https://ciam-us-qa.example.com/api/v1",
	{RegionUS, EnvUAT}:   "https://ciam-us-uat.example.com/api/v1",
	{RegionUS, EnvProd}:  "https://ciam-us.example.com/api/v1",
	{RegionUK, EnvDev}:   "https://ciam-uk-dev.example.com/api/v1",
	{RegionUK, EnvQA}:    "https://ciam-uk-qa.example.com/api/v1",
	{RegionUK, EnvUAT}:   "https://ciam-uk-uat.example.com/api/v1",
	{RegionUK, EnvProd}:  "https://ciam-uk.example.com/api/v1",
	{RegionCAN, EnvDev}:  "https://ciam-can-dev.example.com/api/v1",
	{RegionCAN, EnvQA}:   "https://ciam-can-qa.example.com/api/v1",
	{RegionCAN, EnvUAT}:  "https://ciam-can-uat.example.com/api/v1",
	{RegionCAN, EnvProd}: "https://ciam-can.example.com/api/v1",
	{RegionANZ, EnvDev}:  "https://ciam-anz-dev.example.com/api/v1",
	{RegionANZ, EnvQA}:   "https://ciam-anz-qa.example.com/api/v1",
	{RegionANZ, EnvUAT}:  "https://ciam-anz-uat.example.com/api/v1",
	{RegionANZ, EnvProd}: "https://ciam-anz.example.com/api/v1",
}

// TokenURL resolves the OAuth2 token endpoint for a region/environment pair.
func TokenURL(region Region, env Environment) (string, error) {
	url, ok := tokenURLs[key{region, env}]
	if !ok {
		return "", fmt.Errorf("%w for region %q and env %q", ErrTokenEndpointNotFound, region, env)
	}
	return url, nil
}

// BaseURL resolves the CIAM API base URL for a region/environment pair.
func BaseURL(region Region, env Environment) (string, error) {
	url, ok := baseURLs[key{region, env}]
	if !ok {
		return "", fmt.Errorf("%w for region %q and env %q", ErrBaseURLNotFound, region, env)
	}
	return url, nil
}
