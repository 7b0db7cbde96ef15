package weathersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/context-broker/pkg/ngsild/client"
	ngsierrors "github.com/diwise/context-broker/pkg/ngsild/errors"
	"github.com/diwise/context-broker/pkg/ngsild/types"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/weather/internal/pkg/application/report"
	"github.com/diwise/weather/internal/pkg/fiware"
)

type WeatherObservedPublisher interface {
	Publish(ctx context.Context, r report.Report) error
}

func NewWeatherObservedPublisher(ctxBrokerClient client.ContextBrokerClient) WeatherObservedPublisher {
	return &publisher{
		ctxBrokerClient: ctxBrokerClient,
		now:             time.Now,
	}
}

type publisher struct {
	ctxBrokerClient client.ContextBrokerClient
	now             func() time.Time
}

func (p *publisher) Publish(ctx context.Context, r report.Report) (err error) {
	_, span := tracer.Start(ctx, "publish-weatherobserved")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	observedAt := r.Observation.ObservedAt
	if observedAt.IsZero() {
		observedAt = p.now()
	}

	var attributes []entities.EntityDecoratorFunc
	attributes, err = fiware.WeatherObservedAttributes(r, observedAt)
	if err != nil {
		err = fmt.Errorf("could not create attributes for weather observed: %w", err)
		return
	}

	fragment, _ := entities.NewFragment(attributes...)
	entityID := fiware.WeatherObservedID(r)

	headers := map[string][]string{"Content-Type": {"application/ld+json"}}

	_, err = p.ctxBrokerClient.MergeEntity(ctx, entityID, fragment, headers)
	if err != nil {
		if !errors.Is(err, ngsierrors.ErrNotFound) {
			err = fmt.Errorf("failed to merge entity: %w", err)
			return
		}

		var entity types.Entity
		entity, err = entities.New(entityID, fiware.WeatherObservedTypeName, attributes...)
		if err != nil {
			err = fmt.Errorf("entities.New failed: %w", err)
			return
		}

		_, err = p.ctxBrokerClient.CreateEntity(ctx, entity, headers)
		if err != nil {
			err = fmt.Errorf("failed to post weather observed to context broker: %w", err)
			return
		}
	}

	return nil
}
