package discord

// User-facing messages. The server is French speaking.
const (
	// Data
	MsgDataErrorFormat = "Erreur données: `%s`"
	MsgNoWeight        = "Poids total = 0, impossible de calculer des probabilités."
	MsgCardNotFound    = "Aucune carte trouvée pour : **%s**"

	// Prices
	MsgPriceAPIErrorFormat = "Erreur API: `%s`"

	// Verify
	MsgGuildOnly          = "Commande utilisable uniquement sur le serveur."
	MsgMissingHeliusKey   = "HELIUS_API_KEY manquant dans .env"
	MsgHeliusErrorFormat  = "Erreur Helius: `%s`"
	MsgCollectionNotFound = "Je n'ai pas trouvé de NFT de la collection sur ce wallet (selon les données renvoyées)."
	MsgRoleNotFound       = "ROLE_COLLECTIONNEUR_ID invalide (rôle introuvable)."
	MsgMemberNotFound     = "Impossible de récupérer ton profil membre sur ce serveur."
	MsgRolePermission     = "Je n'ai pas la permission d'attribuer ce rôle. Vérifie la hiérarchie des rôles."
	MsgVerifySuccess      = "Vérification réussie ! Rôle **Collectionneur** attribué."

	MsgGenericError = "❌ Une erreur est survenue."
)

// Audit log reasons for role grants
const (
	ReasonVerified  = "Vérification NFT réussie (World Icons Cards)"
	ReasonNewMember = "Auto assign Collectionneur role"
)

// Embed texts
const (
	TitleLootRate       = "Taux de loot : "
	FieldAllCards       = "Toutes les cartes"
	FieldAllCardsCont   = "Toutes les cartes (suite)"
	FooterLootRate      = "World Icons Cards - /lootrate"
	TitleCardFormat     = "Carte: %s"
	FieldKey            = "Key"
	FieldTier           = "Rareté (tier)"
	FieldWeight         = "Poids"
	FieldProbability    = "Probabilité (sur un loot)"
	FieldURI            = "URI"
	TitlePrice          = "Prix crypto (CoinGecko)"
	FooterPrice         = "Source: CoinGecko - /sui"
	ValueNotAvailable   = "N/A"
	EmbedFieldMaxLength = 1024
	AutocompleteLimit   = 25
	ChoiceMaxLength     = 100
)
