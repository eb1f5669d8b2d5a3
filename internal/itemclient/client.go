package itemclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ItemStore/internal/items"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrBadStatus   = errors.New("item service bad status")
	ErrUnavailable = errors.New("item service unavailable")
	ErrBadQuantity = errors.New("item quantity is not an integer")
)

const defaultTimeout = 3 * time.Second

// Client talks to the item service over its JSON API.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) List(ctx context.Context) ([]items.Item, error) {
	var out []items.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (items.Item, error) {
	var it items.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, http.StatusOK, &it); err != nil {
		return items.Item{}, err
	}
	return it, nil
}

func (c *Client) Create(ctx context.Context, p items.Patch) (items.Item, error) {
	var it items.Item
	if err := c.do(ctx, http.MethodPost, "/items", &p, http.StatusCreated, &it); err != nil {
		return items.Item{}, err
	}
	return it, nil
}

func (c *Client) Update(ctx context.Context, id int, p items.Patch) (items.Item, error) {
	var it items.Item
	if err := c.do(ctx, http.MethodPut, itemPath(id), &p, http.StatusOK, &it); err != nil {
		return items.Item{}, err
	}
	return it, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, http.StatusOK, nil)
}

// Restock adds amount to the item's quantity and stores the new total as
// text. Only the quantity field is sent, so concurrent edits to other
// fields survive. An absent, empty or non-integer quantity cannot be
// restocked.
func (c *Client) Restock(ctx context.Context, id, amount int) (items.Item, error) {
	it, err := c.Get(ctx, id)
	if err != nil {
		return items.Item{}, err
	}

	q, _ := items.TextOf(it.Quantity)
	current, err := strconv.Atoi(strings.TrimSpace(q))
	if err != nil {
		return items.Item{}, fmt.Errorf("%w: %q", ErrBadQuantity, q)
	}

	return c.Update(ctx, id, items.Patch{
		Quantity: items.Value(strconv.Itoa(current + amount)),
	})
}

func itemPath(id int) string {
	return "/items/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, p *items.Patch, want int, out any) error {
	var body io.Reader
	if p != nil {
		b, err := json.Marshal(*p)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case want:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
