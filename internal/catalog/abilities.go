package catalog

// AbilityName identifies one of the fixed ability definitions. The set is
// closed: every kit slot references one of these constants.
type AbilityName string

const (
	Sabotaje            AbilityName = "sabotaje"
	BloqueoEnergetico   AbilityName = "bloqueo_energetico"
	Retroceso           AbilityName = "retroceso"
	IntercambioForzado  AbilityName = "intercambio_forzado"
	EscudoTotal         AbilityName = "escudo_total"
	Barrera             AbilityName = "barrera"
	TransferenciaDeFase AbilityName = "transferencia_de_fase"
	Curacion            AbilityName = "curacion"
	BombaEnergetica     AbilityName = "bomba_energetica"
	Invisibilidad       AbilityName = "invisibilidad"
	MinaDeEnergia       AbilityName = "mina_de_energia"
	SobrecargaInestable AbilityName = "sobrecarga_inestable"
	HilosEspectrales    AbilityName = "hilos_espectrales"
	TironDeCadenas      AbilityName = "tiron_de_cadenas"
	ControlTotal        AbilityName = "control_total"
	TraspasoDeDolor     AbilityName = "traspaso_de_dolor"
	Tsunami             AbilityName = "tsunami"
	DobleTurno          AbilityName = "doble_turno"
	Caos                AbilityName = "caos"
	ReboteControlado    AbilityName = "rebote_controlado"
	Robo                AbilityName = "robo"
	FugaDeEnergia       AbilityName = "fuga_de_energia"
	Cohete              AbilityName = "cohete"
	DadoPerfecto        AbilityName = "dado_perfecto"
)

// AbilityCategory is one of the four closed categories from the spec.
type AbilityCategory string

const (
	CategoryOffensive AbilityCategory = "offensive"
	CategoryDefensive AbilityCategory = "defensive"
	CategoryMovement  AbilityCategory = "movement"
	CategoryControl   AbilityCategory = "control"
)

// Ability is the immutable metadata for one ability. Movement abilities move
// the caster and transition the turn state machine to "rolled" with a
// synthetic move result; movement-of-other abilities move a different
// player and resolve that player's tile+collision inline, without touching
// the caster's turn state.
type Ability struct {
	Name              AbilityName
	Category          AbilityCategory
	BaseCooldown      int
	EnergyCost        int
	Symbol            string
	MovesCaster       bool // Lane A transitions caster to "rolled"
	MovesOther        bool // target/peer repositioned, resolved inline
	RequiresTarget    bool
	Description       string
}

// Kit identifies one of the six fixed ability loadouts.
type Kit string

const (
	KitTactico    Kit = "tactico"
	KitGuardian   Kit = "guardian"
	KitIngeniero  Kit = "ingeniero"
	KitEspectro   Kit = "espectro"
	KitTemerario  Kit = "temerario"
	KitMercader   Kit = "mercader"
)

// AllKits lists the six kits in a stable order, used when a room is created
// without an explicit kit preference.
var AllKits = []Kit{KitTactico, KitGuardian, KitIngeniero, KitEspectro, KitTemerario, KitMercader}

func defaultAbilities() map[AbilityName]Ability {
	return map[AbilityName]Ability{
		Sabotaje: {
			Name: Sabotaje, Category: CategoryControl, BaseCooldown: 4, EnergyCost: 40,
			Symbol: "⏸️", RequiresTarget: true,
			Description: "Pauses the target for one turn.",
		},
		BloqueoEnergetico: {
			Name: BloqueoEnergetico, Category: CategoryControl, BaseCooldown: 5, EnergyCost: 50,
			Symbol: "🚫", RequiresTarget: true,
			Description: "Blocks the target's energy gains for two rounds.",
		},
		Retroceso: {
			Name: Retroceso, Category: CategoryControl, BaseCooldown: 4, EnergyCost: 45,
			Symbol: "⬅️", RequiresTarget: true,
			Description: "Pushes the target back 5 cells.",
		},
		IntercambioForzado: {
			Name: IntercambioForzado, Category: CategoryMovement, BaseCooldown: 6, EnergyCost: 60,
			Symbol: "🔄", RequiresTarget: true, MovesCaster: true,
			Description: "Swaps positions with the target.",
		},
		EscudoTotal: {
			Name: EscudoTotal, Category: CategoryDefensive, BaseCooldown: 5, EnergyCost: 40,
			Symbol: "🛡️",
			Description: "Shields the caster for 3 rounds.",
		},
		Barrera: {
			Name: Barrera, Category: CategoryDefensive, BaseCooldown: 5, EnergyCost: 35,
			Symbol: "🔮",
			Description: "Raises a barrier for 2 turns that reflects the next effect.",
		},
		TransferenciaDeFase: {
			Name: TransferenciaDeFase, Category: CategoryDefensive, BaseCooldown: 4, EnergyCost: 30,
			Symbol: "👻",
			Description: "Makes the caster intangible for their next move.",
		},
		Curacion: {
			Name: Curacion, Category: CategoryDefensive, BaseCooldown: 4, EnergyCost: 20,
			Symbol: "💚",
			Description: "Restores 150 energy to the caster.",
		},
		BombaEnergetica: {
			Name: BombaEnergetica, Category: CategoryOffensive, BaseCooldown: 6, EnergyCost: 70,
			Symbol: "💥",
			Description: "Damages every other active player within radius 3.",
		},
		Invisibilidad: {
			Name: Invisibilidad, Category: CategoryDefensive, BaseCooldown: 5, EnergyCost: 35,
			Symbol: "🫥",
			Description: "Makes the caster invisible for 2 turns.",
		},
		MinaDeEnergia: {
			Name: MinaDeEnergia, Category: CategoryControl, BaseCooldown: 5, EnergyCost: 30,
			Symbol: "💣",
			Description: "Places a hidden mine on the caster's current cell.",
		},
		SobrecargaInestable: {
			Name: SobrecargaInestable, Category: CategoryOffensive, BaseCooldown: 6, EnergyCost: 25,
			Symbol: "⚡",
			Description: "Trades a small cost now for an unstable payout at the caster's next turn.",
		},
		HilosEspectrales: {
			Name: HilosEspectrales, Category: CategoryControl, BaseCooldown: 5, EnergyCost: 30,
			Symbol: "🕸️", RequiresTarget: true,
			Description: "Links the caster to a nearby target for 4 turns.",
		},
		TironDeCadenas: {
			Name: TironDeCadenas, Category: CategoryControl, BaseCooldown: 3, EnergyCost: 20,
			Symbol: "⛓️",
			Description: "Pulls the linked target 3 cells toward the caster.",
		},
		ControlTotal: {
			Name: ControlTotal, Category: CategoryControl, BaseCooldown: 6, EnergyCost: 50,
			Symbol: "🎮",
			Description: "Forces the linked target's next die roll.",
		},
		TraspasoDeDolor: {
			Name: TraspasoDeDolor, Category: CategoryDefensive, BaseCooldown: 5, EnergyCost: 30,
			Symbol: "🔗",
			Description: "Redirects half of the caster's next damage to the linked target.",
		},
		Tsunami: {
			Name: Tsunami, Category: CategoryOffensive, BaseCooldown: 6, EnergyCost: 55,
			Symbol: "🌊",
			Description: "Pushes every other active player back 3 cells.",
		},
		DobleTurno: {
			Name: DobleTurno, Category: CategoryControl, BaseCooldown: 5, EnergyCost: 35,
			Symbol: "🎲",
			Description: "The caster rolls two dice on their next roll.",
		},
		Caos: {
			Name: Caos, Category: CategoryControl, BaseCooldown: 6, EnergyCost: 45,
			Symbol: "🌀",
			Description: "Moves every active player a random 1-6 cells.",
		},
		ReboteControlado: {
			Name: ReboteControlado, Category: CategoryMovement, BaseCooldown: 4, EnergyCost: 25,
			Symbol: "↩️", MovesCaster: true,
			Description: "Moves the caster back 2 then forward 9.",
		},
		Robo: {
			Name: Robo, Category: CategoryOffensive, BaseCooldown: 4, EnergyCost: 30,
			Symbol: "🪙",
			Description: "Steals energy from the richest opponent.",
		},
		FugaDeEnergia: {
			Name: FugaDeEnergia, Category: CategoryOffensive, BaseCooldown: 5, EnergyCost: 30,
			Symbol: "🩸", RequiresTarget: true,
			Description: "Applies a periodic energy leak to the target for 3 turns.",
		},
		Cohete: {
			Name: Cohete, Category: CategoryMovement, BaseCooldown: 5, EnergyCost: 40,
			Symbol: "🚀", MovesCaster: true,
			Description: "Launches the caster forward 3-7 cells.",
		},
		DadoPerfecto: {
			Name: DadoPerfecto, Category: CategoryControl, BaseCooldown: 4, EnergyCost: 15,
			Symbol: "🎯",
			Description: "Stashes a chosen die value for the caster's next roll.",
		},
	}
}

func defaultKits() map[Kit][4]AbilityName {
	return map[Kit][4]AbilityName{
		KitTactico:   {Sabotaje, BloqueoEnergetico, Retroceso, IntercambioForzado},
		KitGuardian:  {EscudoTotal, Barrera, TransferenciaDeFase, Curacion},
		KitIngeniero: {BombaEnergetica, Invisibilidad, MinaDeEnergia, SobrecargaInestable},
		KitEspectro:  {HilosEspectrales, TironDeCadenas, ControlTotal, TraspasoDeDolor},
		KitTemerario: {Tsunami, DobleTurno, Caos, ReboteControlado},
		KitMercader:  {Robo, FugaDeEnergia, Cohete, DadoPerfecto},
	}
}
