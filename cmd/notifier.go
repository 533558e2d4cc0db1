package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gruzBack/internal/handlers"
	"gruzBack/internal/models"
)

const pushTimeout = 10 * time.Second

// offerNotifier fans offer events out to the websocket feed and to push.
// Delivery is best effort and never blocks the request path.
type offerNotifier struct {
	ws      *WebSocketManager
	fcm     *handlers.FCMHandler
	infoLog *log.Logger
}

func (n *offerNotifier) NewOffer(order models.Order, offer models.Offer) {
	go func() {
		n.ws.SendToUser(order.UserID, Event{
			Type:    "new_offer",
			OrderID: order.OrderID,
			Payload: offer,
		})
		if n.fcm != nil && n.fcm.Client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			defer cancel()
			body := fmt.Sprintf("Новое предложение по заказу %s: %d", order.OrderID, offer.Price)
			n.fcm.SendToUser(ctx, order.UserID, "Новое предложение", body, "/orders/"+order.OrderID)
		}
	}()
}

func (n *offerNotifier) OfferSelected(order models.Order, executorID int) {
	go func() {
		n.ws.SendToUser(executorID, Event{
			Type:    "offer_selected",
			OrderID: order.OrderID,
		})
		if n.fcm != nil && n.fcm.Client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			defer cancel()
			body := fmt.Sprintf("Ваше предложение по заказу %s принято", order.OrderID)
			n.fcm.SendToUser(ctx, executorID, "Предложение принято", body, "/orders/"+order.OrderID)
		}
	}()
}
