package api

import (
	"context"
	"errors"

	apiutil "github.com/absmach/supermq/api/http/util"
	"github.com/absmach/warden/agent"
	pkgerrors "github.com/absmach/warden/pkg/errors"
	"github.com/go-kit/kit/endpoint"
)

func infoEndpoint(svc agent.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(emptyReq)
		if !ok {
			return infoRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return infoRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		info, err := svc.Info(ctx)
		if err != nil {
			return infoRes{}, err
		}

		return infoRes{Info: info}, nil
	}
}

func metricsEndpoint(svc agent.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(emptyReq)
		if !ok {
			return metricsRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return metricsRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		snapshot, err := svc.Metrics(ctx)
		if err != nil {
			return metricsRes{}, err
		}

		return metricsRes{Snapshot: snapshot}, nil
	}
}

func updateEndpoint(svc agent.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(emptyReq)
		if !ok {
			return commandRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return commandRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		result, err := svc.Update(ctx)
		if err != nil {
			return commandRes{}, err
		}

		return commandRes{Result: result}, nil
	}
}

func rebootEndpoint(svc agent.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(emptyReq)
		if !ok {
			return commandRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return commandRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		result, err := svc.Reboot(ctx)
		if err != nil {
			return commandRes{}, err
		}

		return commandRes{Result: result}, nil
	}
}
