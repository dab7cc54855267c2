// SPDX-License-Identifier: MPL-2.0

package node

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
)

const (
	jsonRPCVersion = "2.0"

	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601

	maxRequestBytes = 5 << 20
)

type (
	rpcRequest struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id,omitempty"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	rpcError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	rpcResponse struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result,omitempty"`
		Error   *rpcError       `json:"error,omitempty"`
	}

	rpcHandler struct {
		logger  *log.Logger
		methods map[string]any
	}
)

// identityMethods are the methods answerable from configuration alone.
func identityMethods(version string, chainID uint64) map[string]any {
	return map[string]any{
		"web3_clientVersion": "anvil/v" + version,
		"eth_chainId":        "0x" + strconv.FormatUint(chainID, 16),
		"net_version":        strconv.FormatUint(chainID, 10),
		"net_listening":      true,
		"eth_syncing":        false,
	}
}

func (h *rpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, errorResponse(nil, codeParseError, "failed to read request body"))
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []rpcRequest
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			writeJSON(w, errorResponse(nil, codeParseError, "parse error"))
			return
		}
		if len(batch) == 0 {
			writeJSON(w, errorResponse(nil, codeInvalidRequest, "empty batch"))
			return
		}
		responses := make([]rpcResponse, len(batch))
		for i := range batch {
			responses[i] = h.call(&batch[i])
		}
		writeJSON(w, responses)
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		writeJSON(w, errorResponse(nil, codeParseError, "parse error"))
		return
	}
	writeJSON(w, h.call(&req))
}

func (h *rpcHandler) call(req *rpcRequest) rpcResponse {
	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		return errorResponse(req.ID, codeInvalidRequest, "invalid request")
	}

	h.logger.Debug("rpc request", "method", req.Method)
	result, ok := h.methods[req.Method]
	if !ok {
		return errorResponse(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
	return rpcResponse{JSONRPC: jsonRPCVersion, ID: idOrNull(req.ID), Result: result}
}

func errorResponse(id json.RawMessage, code int, msg string) rpcResponse {
	return rpcResponse{
		JSONRPC: jsonRPCVersion,
		ID:      idOrNull(id),
		Error:   &rpcError{Code: code, Message: msg},
	}
}

func idOrNull(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
