package chain

import (
	"errors"
	"fmt"

	"creator-engagement-system/common/tool"

	"github.com/tidwall/gjson"
)

// Client read-only Sui fullnode JSON-RPC client
type Client struct {
	rpcURL    string
	packageID string
	module    string
	sender    string
}

// NewClient create fullnode client instance
func NewClient(rpcURL, packageID, module, sender string) *Client {
	return &Client{
		rpcURL:    rpcURL,
		packageID: packageID,
		module:    module,
		sender:    sender,
	}
}

// RPCRequest RPC request structure
type RPCRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// ObjectInfo summary of an on-chain object returned by multiGetObjects
type ObjectInfo struct {
	ObjectID string // Canonical object ID
	Type     string // Full Move type tag
	Owner    string // Owner address, empty for shared objects
	Content  string // Raw JSON of the object's Move fields
}

// ReadAddressVector invoke a read-only registry view function and return the
// decoded list of object IDs from its first return value.
//
// The function is expected to return vector<address>; the raw BCS bytes come
// back through devInspect without executing a transaction.
func (c *Client) ReadAddressVector(function, registryID string) ([]string, error) {
	payload, err := c.devInspectCall(function, []interface{}{registryID})
	if err != nil {
		return nil, err
	}
	return DecodeAddressVector(payload)
}

// GetObjects fetch object summaries for the given IDs in one multiGetObjects call
func (c *Client) GetObjects(ids []string) ([]ObjectInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	result, err := c.rpcCall("sui_multiGetObjects", []interface{}{
		ids,
		map[string]bool{"showContent": true, "showOwner": true, "showType": true},
	})
	if err != nil {
		return nil, err
	}

	var objects []ObjectInfo
	result.ForEach(func(_, obj gjson.Result) bool {
		data := obj.Get("data")
		if !data.Exists() {
			// Deleted or not-yet-indexed objects come back as error entries; skip them.
			return true
		}
		objects = append(objects, ObjectInfo{
			ObjectID: data.Get("objectId").String(),
			Type:     data.Get("type").String(),
			Owner:    data.Get("owner.AddressOwner").String(),
			Content:  data.Get("content.fields").Raw,
		})
		return true
	})

	return objects, nil
}

// devInspectCall build an unsigned move call and devInspect it, returning the
// raw bytes of the first return value
func (c *Client) devInspectCall(function string, args []interface{}) ([]byte, error) {
	target := fmt.Sprintf("%s::%s::%s", c.packageID, c.module, function)

	// unsafe_moveCall assembles the transaction bytes server-side; the call is
	// never signed or executed, only inspected.
	built, err := c.rpcCall("unsafe_moveCall", []interface{}{
		c.sender, c.packageID, c.module, function,
		[]interface{}{}, args, nil, "10000000",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build move call %s: %w", target, err)
	}
	txBytes := built.Get("txBytes").String()
	if txBytes == "" {
		return nil, fmt.Errorf("no txBytes in moveCall response for %s", target)
	}

	inspected, err := c.rpcCall("sui_devInspectTransactionBlock", []interface{}{c.sender, txBytes})
	if err != nil {
		return nil, fmt.Errorf("devInspect failed for %s: %w", target, err)
	}

	raw := inspected.Get("results.0.returnValues.0.0")
	if !raw.Exists() {
		return nil, fmt.Errorf("no return value for %s", target)
	}

	payload := make([]byte, 0, len(raw.Array()))
	raw.ForEach(func(_, b gjson.Result) bool {
		payload = append(payload, byte(b.Int()))
		return true
	})

	return payload, nil
}

// rpcCall send an RPC request and return the result field
func (c *Client) rpcCall(method string, params []interface{}) (gjson.Result, error) {
	request := RPCRequest{
		Jsonrpc: "2.0",
		ID:      method,
		Method:  method,
		Params:  params,
	}

	respStr, err := tool.PostUrl(c.rpcURL, request, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("rpc call failed: %w", err)
	}
	if !gjson.Valid(respStr) {
		return gjson.Result{}, errors.New("invalid rpc response")
	}

	resp := gjson.Parse(respStr)
	if rpcErr := resp.Get("error"); rpcErr.Exists() {
		return gjson.Result{}, fmt.Errorf("rpc error: %s", rpcErr.Get("message").String())
	}

	return resp.Get("result"), nil
}
