package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/types"
)

type ControllerFactory interface {
	NewController() (types.Controller, error)
}

type controllerFactoryWithPriority struct {
	Priority int
	ControllerFactory
}

var controllerFactoryRegistry = map[reflect.Type]controllerFactoryWithPriority{}

func RegisterControllerFactory(
	priority int,
	controllerFactory ControllerFactory,
) {
	t := reflect.ValueOf(controllerFactory).Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if _, ok := controllerFactoryRegistry[t]; ok {
		panic(fmt.Errorf("there is already registered a factory of Controller of type %v", t))
	}
	controllerFactoryRegistry[t] = controllerFactoryWithPriority{
		Priority:          priority,
		ControllerFactory: controllerFactory,
	}
}

func ControllerFactories() []ControllerFactory {
	var factoriesWithPriorities []controllerFactoryWithPriority
	for _, factory := range controllerFactoryRegistry {
		factoriesWithPriorities = append(factoriesWithPriorities, factory)
	}
	sort.Slice(factoriesWithPriorities, func(i, j int) bool {
		return factoriesWithPriorities[i].Priority > factoriesWithPriorities[j].Priority
	})

	var factories []ControllerFactory
	for _, factory := range factoriesWithPriorities {
		factories = append(factories, factory.ControllerFactory)
	}

	return factories
}
