package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Provider resolves client IPs to ISO country codes using a MaxMind
// GeoLite2 database. Used to enrich interaction events; lookups are
// best-effort and never block ingestion.
type Provider struct {
	reader *geoip2.Reader
}

// NewProvider opens the GeoIP database at the given path.
func NewProvider(dbPath string) (*Provider, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database: %w", err)
	}
	return &Provider{reader: reader}, nil
}

// Country returns the ISO country code for an IP address, or "" when the
// IP is invalid or unknown.
func (p *Provider) Country(ip string) (string, error) {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	record, err := p.reader.Country(parsedIP)
	if err != nil {
		return "", err
	}
	return record.Country.IsoCode, nil
}

// Close closes the GeoIP database.
func (p *Provider) Close() error {
	return p.reader.Close()
}
