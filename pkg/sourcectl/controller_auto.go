package sourcectl

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/registry"
)

var (
	lastSuccessfulControllerFactory       registry.ControllerFactory
	lastSuccessfulControllerFactoryLocker sync.Mutex
)

func getLastSuccessfulControllerFactory() registry.ControllerFactory {
	lastSuccessfulControllerFactoryLocker.Lock()
	defer lastSuccessfulControllerFactoryLocker.Unlock()
	return lastSuccessfulControllerFactory
}

// NewControllerAuto returns a Controller backed by the highest-priority
// backend that connects and answers a ping.
func NewControllerAuto(
	ctx context.Context,
) (Controller, error) {
	factory := getLastSuccessfulControllerFactory()
	if factory != nil {
		controller, err := factory.NewController()
		if err == nil {
			if err := controller.Ping(ctx); err == nil {
				return controller, nil
			}
			controller.Close()
		}
	}

	var mErr *multierror.Error
	for _, factory := range registry.ControllerFactories() {
		controller, err := factory.NewController()
		logger.Debugf(ctx, "initializing controller %T result is %v", controller, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to initialize %T: %w", controller, err))
			continue
		}

		err = controller.Ping(ctx)
		logger.Debugf(ctx, "pinging controller %T result is %v", controller, err)
		if err != nil {
			controller.Close()
			mErr = multierror.Append(mErr, fmt.Errorf("unable to ping %T: %w", controller, err))
			continue
		}

		lastSuccessfulControllerFactoryLocker.Lock()
		defer lastSuccessfulControllerFactoryLocker.Unlock()
		lastSuccessfulControllerFactory = factory
		return controller, nil
	}

	return nil, fmt.Errorf("was unable to initialize any audio server controller: %w", mErr.ErrorOrNil())
}
