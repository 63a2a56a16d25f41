package geolite

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"golang.org/x/sync/singleflight"
)

// Resolver answers country and city lookups from a local MaxMind City
// database. It backfills fields the probe endpoint left empty and never
// fails a check: lookup problems just leave the fields as they were.
type Resolver struct {
	mu     sync.RWMutex
	reader *geoip2.Reader

	lookups singleflight.Group
}

// Open loads the City database at path into memory.
func Open(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geolite database: %w", err)
	}

	reader, err := geoip2.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("open geolite database: %w", err)
	}

	return &Resolver{reader: reader}, nil
}

// Close releases the underlying reader. Lookups after Close resolve nothing.
func (resolver *Resolver) Close() error {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	if resolver.reader == nil {
		return nil
	}

	err := resolver.reader.Close()
	resolver.reader = nil
	return err
}

type location struct {
	country string
	city    string
}

// Fill returns country and city for ip, keeping values that are already
// set. The lookup only runs when at least one field is missing.
func (resolver *Resolver) Fill(ip, country, city string) (string, string) {
	if ip == "" || (country != "" && city != "") {
		return country, city
	}

	loc := resolver.lookup(ip)
	if country == "" {
		country = loc.country
	}
	if city == "" {
		city = loc.city
	}

	return country, city
}

// lookup dedupes concurrent reads of the same address; batch checks often
// resolve to a single exit IP.
func (resolver *Resolver) lookup(ip string) location {
	result, _, _ := resolver.lookups.Do(ip, func() (interface{}, error) {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return location{}, nil
		}

		resolver.mu.RLock()
		defer resolver.mu.RUnlock()

		if resolver.reader == nil {
			return location{}, nil
		}

		record, err := resolver.reader.City(parsed)
		if err != nil {
			return location{}, nil
		}

		loc := location{city: record.City.Names["en"]}
		if name := record.Country.Names["en"]; name != "" {
			loc.country = name
		} else {
			loc.country = record.Country.IsoCode
		}

		return loc, nil
	})

	return result.(location)
}
