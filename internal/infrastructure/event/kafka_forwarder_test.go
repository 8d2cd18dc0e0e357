package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaForwarder_SendsEventAsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewKafkaProducerConfig("storefront-test"))
	forwarder := NewKafkaForwarderWithProducer(producer, "storefront", zap.NewNop())
	defer forwarder.Close()

	userID, productID := uuid.New(), uuid.New()
	event := shopping.NewCartItemRemovedEvent(userID, productID)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "storefront.CartItemRemoved" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var body map[string]any
		if err := json.Unmarshal(value, &body); err != nil {
			return err
		}
		if body["product_id"] != productID.String() || body["type"] != "CartItemRemoved" {
			return errors.New("unexpected payload " + string(value))
		}
		return nil
	})

	require.NoError(t, forwarder.Handle(context.Background(), event))
}

func TestKafkaForwarder_PayloadDecodes(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewKafkaProducerConfig("storefront-test"))
	forwarder := NewKafkaForwarderWithProducer(producer, "", nil)
	defer forwarder.Close()

	event := shopping.NewProductLikeToggledEvent(uuid.New(), uuid.New(), shopping.LikeResult{Liked: true, LikesCount: 3})

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		decoded, err := forwarder.serializer.Deserialize(msg.Topic, value)
		if err != nil {
			return err
		}
		liked, ok := decoded.(*shopping.ProductLikeToggledEvent)
		if !ok || liked.LikesCount != 3 || liked.EventID() != event.EventID() {
			return errors.New("payload did not round-trip")
		}
		return nil
	})

	require.NoError(t, forwarder.Handle(context.Background(), event))
	assert.Equal(t, shopping.EventTypeProductLiked, forwarder.Topic(event.EventType()))
}

func TestKafkaForwarder_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	forwarder := NewKafkaForwarderWithProducer(producer, "storefront", zap.NewNop())
	defer forwarder.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := forwarder.Handle(context.Background(), shopping.NewCartItemRemovedEvent(uuid.New(), uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestKafkaForwarder_FailureDoesNotBreakPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	forwarder := NewKafkaForwarderWithProducer(producer, "storefront", zap.NewNop())
	defer forwarder.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(forwarder)
	recorder := newTestHandler(shopping.EventTypeCartItemRemoved)
	bus.Subscribe(recorder)

	err := bus.Publish(context.Background(), shopping.NewCartItemRemovedEvent(uuid.New(), uuid.New()))
	require.NoError(t, err)
	assert.Len(t, recorder.getHandled(), 1)
}

func TestNewKafkaForwarder_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaForwarder(config.KafkaConfig{Enabled: true}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brokers are required")
}
