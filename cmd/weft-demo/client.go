package main

// indexHTML is the demo page with the thin patch-applying client. The
// client mirrors the wire protocol: one node map keyed by server ID, a
// switch over patch ops, and event frames sent back on bound listeners.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>weft demo</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
  section { margin-bottom: 1.5rem; }
  li { cursor: pointer; }
</style>
</head>
<body>
<div id="root"></div>
<script>
(function () {
  var nodes = { root: document.getElementById("root") };
  var listeners = {};
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");

  function send(id, event, target) {
    ws.send(JSON.stringify({
      type: "event",
      id: id,
      event: event,
      value: target && target.value !== undefined ? String(target.value) : "",
      checked: !!(target && target.checked)
    }));
  }

  function apply(p) {
    var n = nodes[p.id];
    switch (p.op) {
      case "createElement": nodes[p.id] = document.createElement(p.tag); break;
      case "createText": nodes[p.id] = document.createTextNode(p.value); break;
      case "setText": n.nodeValue = p.value; break;
      case "setAttr":
        n.setAttribute(p.key, p.value);
        if (p.key === "value" && "value" in n) n.value = p.value;
        break;
      case "removeAttr": n.removeAttribute(p.key); break;
      case "setStyle": n.style.setProperty(p.key, p.value); break;
      case "removeStyle": n.style.removeProperty(p.key); break;
      case "bind": {
        var lk = p.id + "_" + p.key;
        if (!listeners[lk]) {
          listeners[lk] = function (e) { send(p.id, p.key, e.target); };
          n.addEventListener(p.key, listeners[lk]);
        }
        break;
      }
      case "unbind": {
        var uk = p.id + "_" + p.key;
        if (listeners[uk]) {
          n.removeEventListener(p.key, listeners[uk]);
          delete listeners[uk];
        }
        break;
      }
      case "insert":
        nodes[p.parent].insertBefore(nodes[p.id], p.anchor ? nodes[p.anchor] : null);
        break;
      case "remove":
        nodes[p.parent].removeChild(nodes[p.id]);
        delete nodes[p.id];
        break;
    }
  }

  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type !== "patches") return;
    for (var i = 0; i < frame.patches.length; i++) apply(frame.patches[i]);
  };
})();
</script>
</body>
</html>
`
