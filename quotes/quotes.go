// Package quotes fetches the latest market price of listed symbols. It is
// only used to refresh the CurrentPrice column of a portfolio CSV before a
// run; the simulation itself never goes to the network.
package quotes

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/skimscoop/thomas/date"
)

// quoteURL is the quote endpoint. Variable so tests can point it at a fake.
var quoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// Latest fetches the latest price of each symbol, in the quote currency.
// Symbols the endpoint does not answer for are reported as a joined error;
// the returned map still holds every symbol that did resolve.
func Latest(client *http.Client, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}
	addr := quoteURL + "?symbols=" + url.QueryEscape(strings.Join(symbols, ","))

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	const path = "$.quoteResponse.result"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing quotes: %q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing quotes: %q is not a list", path)
	}

	prices := make(map[string]float64, len(symbols))
	for _, item := range jlist {
		jq, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sym, _ := jq["symbol"].(string)
		price, ok := jq["regularMarketPrice"].(float64)
		if sym == "" || !ok {
			continue
		}
		prices[strings.ToUpper(sym)] = price
	}

	var errs error
	for _, sym := range symbols {
		if _, ok := prices[strings.ToUpper(sym)]; !ok {
			errs = errors.Join(errs, fmt.Errorf("no quote for %q", sym))
		}
	}
	return prices, errs
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// Daily returns a client with a cache all with daily expire.
func Daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}
