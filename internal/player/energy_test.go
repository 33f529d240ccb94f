package player

import (
	"testing"

	"github.com/voltrace/gameserver/internal/catalog"
)

func abilities() [4]catalog.AbilityName {
	a, _ := catalog.Default().KitAbilities(catalog.KitGuardian)
	return a
}

func TestAdjustEnergyShieldNullifiesWithoutConsuming(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 100)
	p.AddEffect(Effect{Kind: EffectShield, TurnsRemaining: 3})

	res := p.AdjustEnergy(-80, 4)

	if p.Energy != 100 {
		t.Fatalf("expected energy unchanged at 100, got %d", p.Energy)
	}
	if res.ActualDelta != 0 {
		t.Fatalf("expected actual delta 0, got %d", res.ActualDelta)
	}
	if !p.HasEffect(EffectShield) {
		t.Fatal("expected shield to still be active after nullifying damage")
	}
}

func TestAdjustEnergyLastBreathRescuesLethalDamage(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 40)
	p.GrantPerk(catalog.UltimoAliento)

	res := p.AdjustEnergy(-80, 4)

	if !p.Active {
		t.Fatal("expected player to remain active after last breath")
	}
	if p.Energy != 50 {
		t.Fatalf("expected energy snapped to 50, got %d", p.Energy)
	}
	if !p.LastBreathUsed {
		t.Fatal("expected LastBreathUsed to be set")
	}
	shield, ok := p.Effect(EffectShield)
	if !ok {
		t.Fatal("expected a shield effect to be appended")
	}
	if shield.TurnsRemaining != DefaultRoundsOfLastBreath*4 {
		t.Fatalf("expected shield duration %d, got %d", DefaultRoundsOfLastBreath*4, shield.TurnsRemaining)
	}
	if !res.LastBreathTriggered {
		t.Fatal("expected LastBreathTriggered in result")
	}
}

func TestAdjustEnergyEliminatesWithoutLastBreath(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 40)

	res := p.AdjustEnergy(-540, 4)

	if p.Active {
		t.Fatal("expected player eliminated")
	}
	if p.Energy != 0 {
		t.Fatalf("expected energy 0, got %d", p.Energy)
	}
	if !res.Eliminated {
		t.Fatal("expected Eliminated in result")
	}
}

func TestAdjustEnergyLastBreathOnlyOnce(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 40)
	p.GrantPerk(catalog.UltimoAliento)

	p.AdjustEnergy(-80, 4)
	if !p.Active {
		t.Fatal("expected player to survive first lethal hit")
	}

	// The rescue also granted a shield; drop it so the second hit lands.
	p.RemoveEffect(EffectShield)
	p.AdjustEnergy(-500, 4)
	if p.Active {
		t.Fatal("expected player eliminated on second lethal hit")
	}
}

func TestAdjustEnergyPainTransferRedirectsHalf(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 200)
	p.AddEffect(Effect{Kind: EffectPainTransfer, TurnsRemaining: 2, Target: "P2"})

	res := p.AdjustEnergy(-100, 4)

	if res.RedirectToName != "P2" {
		t.Fatalf("expected redirect to P2, got %q", res.RedirectToName)
	}
	if res.RedirectDelta != -50 {
		t.Fatalf("expected redirect delta -50, got %d", res.RedirectDelta)
	}
	if p.Energy != 150 {
		t.Fatalf("expected self to take remaining -50, energy=150, got %d", p.Energy)
	}
	if p.HasEffect(EffectPainTransfer) {
		t.Fatal("expected pain_transfer to be consumed")
	}
}

func TestAdjustEnergyAislamientoMitigatesDamage(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 200)
	p.GrantPerk(catalog.Aislamiento)

	p.AdjustEnergy(-100, 4)

	if p.Energy != 120 {
		t.Fatalf("expected 80%% of -100 applied (energy=120), got %d", p.Energy)
	}
}

func TestAdjustEnergyEnergyBlockNullifiesGains(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 100)
	p.AddEffect(Effect{Kind: EffectEnergyBlock, TurnsRemaining: 2})

	p.AdjustEnergy(150, 4)

	if p.Energy != 100 {
		t.Fatalf("expected gain blocked, energy still 100, got %d", p.Energy)
	}
}

func TestCooldownFloorsAtOne(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 100)
	p.GrantPerk(catalog.EnfriamientoRapido)

	p.SetCooldownAfterUse(catalog.EscudoTotal, 1, 1)

	if p.CooldownRemaining(catalog.EscudoTotal) != 1 {
		t.Fatalf("expected cooldown floor of 1, got %d", p.CooldownRemaining(catalog.EscudoTotal))
	}
}

func TestTickCooldownsAndStartDecrementsOnce(t *testing.T) {
	p := New("P1", catalog.KitGuardian, abilities(), 100)
	p.Cooldowns[catalog.EscudoTotal] = 3

	p.TickCooldownsAndStart()

	if p.CooldownRemaining(catalog.EscudoTotal) != 2 {
		t.Fatalf("expected cooldown 2, got %d", p.CooldownRemaining(catalog.EscudoTotal))
	}
}
