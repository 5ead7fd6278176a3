package monday

// GraphQL queries for the monday.com API

const queryBoards = `
query Boards {
  boards(limit: 50) {
    id
    name
  }
}
`

const queryBoardItems = `
query BoardItems($boardId: [ID!]!) {
  boards(ids: $boardId) {
    name
    items_page(limit: 500) {
      items {
        id
        name
        column_values {
          id
          text
          value
        }
      }
    }
  }
}
`

const queryBoardColumns = `
query BoardColumns($boardId: [ID!]!) {
  boards(ids: $boardId) {
    columns {
      id
      title
      type
    }
  }
}
`

const queryBoardSubscribers = `
query BoardSubscribers($boardId: [ID!]!) {
  boards(ids: $boardId) {
    subscribers {
      id
      name
      email
    }
  }
}
`

const queryMe = `
query Me {
  me {
    id
  }
}
`
