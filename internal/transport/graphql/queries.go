package graphql

const creatureFields = `
  id
  number
  name
  classification
  image
  types
  weaknesses
  maxHP
  maxCP
  fleeRate
  height { minimum maximum }
  weight { minimum maximum }
  attacks {
    fast { name type damage }
    special { name type damage }
  }
  evolutionRequirements { amount name }
  evolutions { id number name image maxCP types }
`

const rosterQuery = `query Roster($first: Int!) {
  pokemons(first: $first) {` + creatureFields + `}
}`

const creatureQuery = `query Creature($id: String!) {
  pokemon(id: $id) {` + creatureFields + `}
}`

const healthQuery = `query Health {
  pokemons(first: 1) { id }
}`
