package ws

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type authenticateMsg struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
}

type createRoomMsg struct {
	KitID string `json:"kit_id"`
}

type roomIDMsg struct {
	RoomID string `json:"room_id" validate:"required"`
}

type useAbilityMsg struct {
	RoomID     string `json:"room_id" validate:"required"`
	AbilityIdx int    `json:"ability_idx" validate:"min=1,max=4"`
	Target     string `json:"target"`
}

type buyPerkPackMsg struct {
	RoomID string `json:"room_id" validate:"required"`
	Tier   string `json:"tier" validate:"required,oneof=basic intermediate advanced"`
}

type selectPerkMsg struct {
	RoomID       string `json:"room_id" validate:"required"`
	PerkID       string `json:"perk_id" validate:"required"`
	ExpectedCost int    `json:"expected_cost"`
}

type sendChatMsg struct {
	RoomID string `json:"room_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=500"`
}

type leaveRematchQueueMsg struct {
	OriginalRoomID string `json:"original_room_id" validate:"required"`
}

func decodeAndValidate(raw []byte, v any) error {
	if err := unmarshalInto(raw, v); err != nil {
		return err
	}
	return validate.Struct(v)
}
