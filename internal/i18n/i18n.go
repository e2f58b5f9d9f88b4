package i18n

import "strings"

// Translations are keyed by short codes; French is the reference language of
// the product, English is a convenience for the API consumer.
var translations = map[string]map[string]string{
	"fr": {
		"required":          "Requis",
		"invalid":           "Invalide",
		"status.nouveau":    "Nouveau",
		"status.en_cours":   "En cours",
		"status.termine":    "Terminé",
		"status.annule":     "Annulé",
		"type.emporter":     "À emporter",
		"type.livraison":    "Livraison",
		"type.sur_place":    "Sur place",
		"login.bad_code":    "Mot de passe incorrect",
		"order.created":     "Commande créée",
		"order.deleted":     "Commande supprimée",
		"popup.blocked":     "Veuillez autoriser les pop-ups pour imprimer le ticket.",
		"client.unknown":    "Client inconnu",
		"ticket.thanks":     "Merci de votre visite !",
		"ticket.see_you":    "À bientôt",

		"validation.required":         "Requis",
		"validation.items_required":   "Au moins un article est requis",
		"validation.items_invalid":    "Article invalide",
		"validation.invalid_type":     "Type de commande invalide",
		"validation.invalid_status":   "Statut invalide",
		"validation.delivery_phone":   "Téléphone requis pour une livraison",
		"validation.delivery_address": "Adresse requise pour une livraison",
		"validation.positive_price":   "Le prix doit être positif",

		"error.bad_json":          "Corps de requête invalide",
		"error.validation":        "Données invalides",
		"error.internal":          "Erreur interne",
		"error.missing_id":        "Identifiant manquant",
		"error.missing_phone":     "Numéro de téléphone manquant",
		"error.bad_date":          "Date invalide",
		"error.bad_view":          "Vue inconnue",
		"error.order_not_found":   "Commande introuvable",
		"error.product_not_found": "Produit introuvable",
		"error.server_not_found":  "Serveur introuvable",
		"error.forbidden":         "Accès refusé",
	},
	"en": {
		"required":          "Required",
		"invalid":           "Invalid",
		"status.nouveau":    "New",
		"status.en_cours":   "In progress",
		"status.termine":    "Completed",
		"status.annule":     "Cancelled",
		"type.emporter":     "Takeaway",
		"type.livraison":    "Delivery",
		"type.sur_place":    "Dine-in",
		"login.bad_code":    "Incorrect password",
		"order.created":     "Order created",
		"order.deleted":     "Order deleted",
		"popup.blocked":     "Please allow pop-ups to print the ticket.",
		"client.unknown":    "Unknown customer",
		"ticket.thanks":     "Thank you for your visit!",
		"ticket.see_you":    "See you soon",

		"validation.required":         "Required",
		"validation.items_required":   "At least one item is required",
		"validation.items_invalid":    "Invalid item",
		"validation.invalid_type":     "Invalid order type",
		"validation.invalid_status":   "Invalid status",
		"validation.delivery_phone":   "Phone number is required for a delivery",
		"validation.delivery_address": "Address is required for a delivery",
		"validation.positive_price":   "Price must be positive",

		"error.bad_json":          "Invalid request body",
		"error.validation":        "Invalid data",
		"error.internal":          "Internal error",
		"error.missing_id":        "Missing id",
		"error.missing_phone":     "Missing phone number",
		"error.bad_date":          "Invalid date",
		"error.bad_view":          "Unknown view",
		"error.order_not_found":   "Order not found",
		"error.product_not_found": "Product not found",
		"error.server_not_found":  "Staff member not found",
		"error.forbidden":         "Access denied",
	},
}

// T translates a code for the given language. Unknown languages fall back to
// French; unknown codes fall back to the code itself so missing entries are
// visible instead of silent.
func T(lang, code string) string {
	m, ok := translations[lang]
	if !ok {
		m = translations["fr"]
	}
	if s, ok := m[code]; ok {
		return s
	}
	if s, ok := translations["fr"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks fr or en from an Accept-Language header value.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return "fr"
}
