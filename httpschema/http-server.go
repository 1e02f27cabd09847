package httpschema

import (
	"encoding/json"
	"io"
	"net/http"

	graphqljsonschema "github.com/chirino/graphql-jsonschema"
	"github.com/jensneuse/abstractlogger"
	"github.com/segmentio/ksuid"
	"github.com/tidwall/sjson"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

type Handler struct {
	Generator           *graphqljsonschema.Generator
	MaxRequestSizeBytes int64
	Indent              string
	Logger              abstractlogger.Logger
}

func (h *Handler) logger() abstractlogger.Logger {
	if h.Logger == nil {
		return abstractlogger.NoopLogger
	}
	return h.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Generator == nil {
		panic("Generator must be configured")
	}

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = ksuid.New().String()
	}
	w.Header().Set(RequestIDHeader, requestID)

	defer r.Body.Close()
	var request graphqljsonschema.Request

	switch r.Method {
	case http.MethodGet:
		request.Query = r.URL.Query().Get("query")
		if variables := r.URL.Query().Get("variables"); variables != "" {
			request.Variables = json.RawMessage(variables)
		}
		request.OperationName = r.URL.Query().Get("operationName")
	case http.MethodPost:

		reader := r.Body.(io.Reader)
		if h.MaxRequestSizeBytes > 0 {
			reader = io.LimitReader(reader, h.MaxRequestSizeBytes)
		}

		var body struct {
			Query         string          `json:"query"`
			OperationName string          `json:"operationName"`
			Variables     json.RawMessage `json:"variables"`
		}
		if err := json.NewDecoder(reader).Decode(&body); err != nil {
			h.logger().Debug("invalid request body",
				abstractlogger.String("requestId", requestID),
				abstractlogger.Error(err),
			)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		request.Query = body.Query
		request.OperationName = body.OperationName
		if len(body.Variables) > 0 && string(body.Variables) != "null" {
			request.Variables = body.Variables
		}

		// Fallback to using query parameters
		if request.Query == "" {
			request.Query = r.URL.Query().Get("query")
		}
		if request.Variables == nil {
			if variables := r.URL.Query().Get("variables"); variables != "" {
				request.Variables = json.RawMessage(variables)
			}
		}
		if request.OperationName == "" {
			request.OperationName = r.URL.Query().Get("operationName")
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	request.Context = r.Context()
	response := h.Generator.ServeSchema(&request)

	data, err := json.Marshal(response)
	if err == nil {
		data, err = sjson.SetBytes(data, "extensions.requestId", requestID)
	}
	if err == nil && h.Indent != "" {
		var indented []byte
		indented, err = indent(data, h.Indent)
		data = indented
	}
	if err != nil {
		h.logger().Error("encoding response failed",
			abstractlogger.String("requestId", requestID),
			abstractlogger.Error(err),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger().Debug("served schema",
		abstractlogger.String("requestId", requestID),
		abstractlogger.String("operationName", request.OperationName),
		abstractlogger.Int("errors", len(response.Errors)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Write(append(data, '\n'))
}
