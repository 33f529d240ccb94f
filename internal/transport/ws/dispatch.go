package ws

import (
	"encoding/json"
	"time"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/metrics"
)

func unmarshalInto(raw []byte, v any) error {
	return json.Unmarshal(raw, v)
}

// dispatch decodes and validates one inbound action and forwards it to the
// room manager, translating the result into an outbound ack/error. Actions
// that succeed via a room.Manager method that already emits its own events
// (roll, resolve-ack, use-ability, chat, perk flows) need no extra ack here;
// the ones room.Manager treats as pure bookkeeping (create/join) get one.
func (c *Client) dispatch(action string, raw []byte) {
	c.actionFailed = false
	defer func() {
		outcome := "ok"
		if c.actionFailed {
			outcome = "error"
		}
		metrics.ActionsTotal.WithLabelValues(action, outcome).Inc()
	}()

	switch action {
	case "authenticate":
		var m authenticateMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid authenticate payload")
			return
		}
		c.name = m.Username
		c.deliver(map[string]any{"type": "authenticated", "username": m.Username})

	case "create_room":
		var m createRoomMsg
		_ = unmarshalInto(raw, &m)
		r := c.gw.mgr.CreateRoom(c.id, c.name)
		if m.KitID != "" {
			r.KitPreference[c.name] = catalog.Kit(m.KitID)
		}
		c.gw.joinRoomTracking(c, r.ID)
		c.deliver(map[string]any{"type": "room_created", "room_id": r.ID})

	case "join_room":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid join_room payload")
			return
		}
		if err := c.gw.mgr.Join(m.RoomID, c.id, c.name); err != nil {
			c.sendError(err.Error())
			return
		}
		c.gw.joinRoomTracking(c, m.RoomID)
		c.deliver(map[string]any{"type": "joined", "room_id": m.RoomID})

	case "leave_room":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid leave_room payload")
			return
		}
		if err := c.gw.mgr.LeaveLobby(m.RoomID, c.id); err != nil {
			c.sendError(err.Error())
		}

	case "start_game":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid start_game payload")
			return
		}
		if err := c.gw.mgr.Start(m.RoomID, time.Now().UnixNano()); err != nil {
			c.sendError(err.Error())
		}

	case "roll_die":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid roll_die payload")
			return
		}
		if err := c.gw.mgr.Roll(m.RoomID, c.name); err != nil {
			c.sendError(err.Error())
		}

	case "resolve_ack":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid resolve_ack payload")
			return
		}
		if err := c.gw.mgr.ResolveAck(m.RoomID, c.name); err != nil {
			c.sendError(err.Error())
		}

	case "use_ability":
		var m useAbilityMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid use_ability payload")
			return
		}
		if err := c.gw.mgr.UseAbility(m.RoomID, c.name, m.AbilityIdx, m.Target); err != nil {
			c.sendError(err.Error())
		}

	case "buy_perk_pack":
		var m buyPerkPackMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid buy_perk_pack payload")
			return
		}
		if err := c.gw.mgr.BuyPerkPack(m.RoomID, c.name, m.Tier); err != nil {
			c.sendError(err.Error())
		}

	case "select_perk":
		var m selectPerkMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid select_perk payload")
			return
		}
		if err := c.gw.mgr.SelectPerk(m.RoomID, c.name, catalog.PerkID(m.PerkID), m.ExpectedCost); err != nil {
			c.sendError(err.Error())
		}

	case "cancel_perk_offer":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid cancel_perk_offer payload")
			return
		}
		if err := c.gw.mgr.CancelPerkOffer(m.RoomID, c.name); err != nil {
			c.sendError(err.Error())
		}

	case "request_perk_prices":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid request_perk_prices payload")
			return
		}
		prices, err := c.gw.mgr.RequestPerkPrices(m.RoomID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.deliver(map[string]any{
			"type":         "perk_prices",
			"basic":        prices[catalog.TierBasic],
			"intermediate": prices[catalog.TierMid],
			"advanced":     prices[catalog.TierHigh],
		})

	case "send_chat":
		var m sendChatMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid send_chat payload")
			return
		}
		if err := c.gw.mgr.SendChat(m.RoomID, c.name, m.Text); err != nil {
			c.sendError(err.Error())
		}

	case "request_rematch":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid request_rematch payload")
			return
		}
		if err := c.gw.mgr.RequestRematch(m.RoomID, c.name); err != nil {
			c.sendError(err.Error())
		}

	case "cancel_rematch":
		var m roomIDMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid cancel_rematch payload")
			return
		}
		if err := c.gw.mgr.CancelRematch(m.RoomID, c.name); err != nil {
			c.sendError(err.Error())
		}

	case "leave_rematch_queue":
		var m leaveRematchQueueMsg
		if err := decodeAndValidate(raw, &m); err != nil {
			c.sendError("invalid leave_rematch_queue payload")
			return
		}
		c.gw.mgr.LeaveRematchQueue(m.OriginalRoomID, c.name)

	case "presence_heartbeat":
		if c.gw.presence != nil {
			c.gw.presence.Heartbeat(c.name)
		}

	default:
		c.sendError("unknown action: " + action)
	}
}
