package orderflow

import "fmt"

// Statuts de commande. La progression est strictement en avant,
// un cran à la fois : pas d'annulation, pas de retour arrière.
const (
	StatusNew      = 1 // commande créée au checkout
	StatusDoing    = 2 // en préparation
	StatusArrived  = 3 // livrée / prête à récupérer
	StatusComplete = 4 // confirmée par le client, terminal
)

var statusNames = map[int]string{
	StatusNew:      "new",
	StatusDoing:    "doing",
	StatusArrived:  "arrived",
	StatusComplete: "complete",
}

// StatusName retourne le libellé d'un code de statut.
func StatusName(status int) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "unknown"
}

// IsValid vérifie qu'un code de statut existe.
func IsValid(status int) bool {
	_, ok := statusNames[status]
	return ok
}

// IsTerminal : COMPLETE est le seul état terminal, il débloque la notation.
func IsTerminal(status int) bool {
	return status == StatusComplete
}

// Next retourne le statut suivant. Erreur si le statut est terminal
// ou inconnu.
func Next(status int) (int, error) {
	if !IsValid(status) {
		return 0, fmt.Errorf("statut inconnu: %d", status)
	}
	if status == StatusComplete {
		return 0, fmt.Errorf("la commande est déjà terminée")
	}
	return status + 1, nil
}

// CanAdvance valide une transition demandée : exactement un cran en avant.
func CanAdvance(from, to int) error {
	next, err := Next(from)
	if err != nil {
		return err
	}
	if to != next {
		return fmt.Errorf("transition invalide: %s → %s (attendu %s)",
			StatusName(from), StatusName(to), StatusName(next))
	}
	return nil
}

// CanReceive : l'action client "j'ai reçu ma commande" ne vaut que
// depuis ARRIVED.
func CanReceive(status int) error {
	if status != StatusArrived {
		return fmt.Errorf("la commande ne peut être confirmée que depuis l'état arrived (actuel: %s)",
			StatusName(status))
	}
	return nil
}

// CanRate : la notation n'est débloquée qu'une fois la commande COMPLETE.
func CanRate(status int) error {
	if status != StatusComplete {
		return fmt.Errorf("la notation n'est possible qu'une fois la commande terminée")
	}
	return nil
}
