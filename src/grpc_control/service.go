package grpc_control

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arbstatistix/financial-engineering/src/config"
	"github.com/arbstatistix/financial-engineering/src/helpers"
	"github.com/arbstatistix/financial-engineering/src/interfaces"
	"github.com/arbstatistix/financial-engineering/src/logger"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ConfigService implements the ConfigServiceServer interface
type ConfigService struct {
	Provider interfaces.IConfigProvider
	Logger   *logger.Logger

	// OnReload runs after every successful Reload call.
	OnReload func(*config.Config)
}

// NewConfigService creates a new instance of ConfigService
func NewConfigService(provider interfaces.IConfigProvider, log *logger.Logger) *ConfigService {
	if log == nil {
		log = logger.NewLogger(nil, "ConfigService")
	}
	return &ConfigService{
		Provider: provider,
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

func (s *ConfigService) current() (*config.Config, error) {
	cfg := s.Provider.Current()
	if cfg == nil {
		return nil, status.Error(codes.Unavailable, "no configuration loaded")
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------

// GetFlat returns the flattened configuration as one string field per key.
func (s *ConfigService) GetFlat(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	cfg, err := s.current()
	if err != nil {
		return nil, err
	}

	out := &structpb.Struct{Fields: make(map[string]*structpb.Value)}
	for _, e := range cfg.Flatten() {
		out.Fields[e.Key] = structpb.NewStringValue(e.Value)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// GetDomain returns one present domain in its JSON shape.
func (s *ConfigService) GetDomain(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "domain is required")
	}

	cfg, err := s.current()
	if err != nil {
		return nil, err
	}

	d, ok := cfg.Domain(req.GetValue())
	if !ok || !d.Present {
		return nil, status.Errorf(codes.NotFound, "domain %s not present", req.GetValue())
	}

	out, err := toStruct(d.Value)
	if err != nil {
		s.Logger.Error("gRPC: Failed to encode domain %s: %v", d.Key, err)
		return nil, status.Errorf(codes.Internal, "failed to encode domain %s", d.Key)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// Reload re-reads the configuration source. A rejected document leaves the
// active configuration untouched.
func (s *ConfigService) Reload(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	cfg, err := s.Provider.Reload()
	if err != nil {
		kind, _ := helpers.KindOf(err)
		s.Logger.Warning("gRPC: Reload rejected (%s): %v", kind, err)
		return nil, status.Errorf(codes.FailedPrecondition, "reload rejected: %v", err)
	}

	if s.OnReload != nil {
		s.OnReload(cfg)
	}

	notices := make([]interface{}, 0, len(cfg.Notices))
	for _, n := range cfg.Notices {
		notices = append(notices, n)
	}

	s.Logger.Info("gRPC: Reload success, %d flat keys", len(cfg.Flatten()))
	return structpb.NewStruct(map[string]interface{}{
		"status":  "reloaded",
		"notices": notices,
	})
}

// -----------------------------------------------------------------------------

func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("domain is not an object: %w", err)
	}
	return structpb.NewStruct(m)
}
